package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjornf-dev/stockscout/internal/domain"
)

func newHistoryCmd(app *app) *cobra.Command {
	var all bool
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history <ticker>",
		Short: "Show stored reports for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(strings.TrimSpace(args[0]))

			if all {
				return writeHistory(cmd, app, ticker, asJSON)
			}

			record, err := app.queries.PastAnalysis(cmd.Context(), ticker)
			if err != nil {
				if errors.Is(err, domain.ErrNoAnalysis) {
					return fmt.Errorf("no stored analysis for %s", ticker)
				}
				return fmt.Errorf("load stored analysis: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "stored at %s\n", record.StoredAt.Format("2006-01-02 15:04 MST")); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), app.renderReport(record.Report))
			return err
		},
	}

	historyCmd.Flags().BoolVar(&all, "all", false, "list every stored report, oldest first")
	historyCmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return historyCmd
}

func writeHistory(cmd *cobra.Command, app *app, ticker string, asJSON bool) error {
	records, err := app.queries.History(cmd.Context(), ticker)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "no stored reports for %s\n", ticker)
		return err
	}

	for _, record := range records {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-4s (%.0f%% confidence, risk %s)\n",
			record.StoredAt.Format("2006-01-02 15:04"),
			record.Ticker,
			record.Report.Recommendation.Action,
			record.Report.Recommendation.Confidence,
			record.Report.Risk.Level,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
