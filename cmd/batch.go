package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errTickersFailed = errors.New("all tickers failed")

func newBatchCmd(app *app) *cobra.Command {
	var asJSON bool

	batchCmd := &cobra.Command{
		Use:   "batch <ticker> [ticker...]",
		Short: "Research several tickers concurrently and compare them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tickers := make([]string, 0, len(args))
			for _, arg := range args {
				tickers = append(tickers, strings.ToUpper(strings.TrimSpace(arg)))
			}

			result := app.batch.RunBatch(cmd.Context(), tickers)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), app.renderComparative(result.Comparative)); err != nil {
					return err
				}
				if len(result.FailedTickers) > 0 {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "failed: %s\n", strings.Join(result.FailedTickers, ", ")); err != nil {
						return err
					}
				}
			}

			if result.Summary.Successful == 0 && result.Summary.Total > 0 {
				// The result (with its failed list) is already on stdout;
				// signal failure through the exit code without printing a
				// second, contradictory error message.
				cmd.SilenceErrors = true
				return errTickersFailed
			}

			return nil
		},
	}

	batchCmd.Flags().BoolVar(&asJSON, "json", false, "print the batch result as JSON")

	return batchCmd
}
