package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResearchCmd(app *app) *cobra.Command {
	var sessionID string
	var asJSON bool

	researchCmd := &cobra.Command{
		Use:   "research <ticker>",
		Short: "Run the full research pipeline for one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(strings.TrimSpace(args[0]))

			outcome := app.pipeline.Run(cmd.Context(), ticker, sessionID)
			if outcome.Failed() {
				return fmt.Errorf("research %s: %s", ticker, outcome.Err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outcome.Report)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.renderReport(outcome.Report))
			return err
		},
	}

	researchCmd.Flags().StringVar(&sessionID, "session", "", "reuse an existing session id")
	researchCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return researchCmd
}
