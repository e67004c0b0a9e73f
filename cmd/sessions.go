package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and maintain live research sessions",
	}

	sessionsCmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsCleanupCmd(app),
	)

	return sessionsCmd
}

func newSessionsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids := app.queries.Sessions()
			if len(ids) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no live sessions")
				return err
			}

			for _, id := range ids {
				summary, err := app.queries.SessionSummary(id)
				if err != nil {
					return fmt.Errorf("summarize session %s: %w", id, err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s  updated %s  researched %d\n",
					summary.ID,
					summary.UpdatedAt.Format("2006-01-02 15:04"),
					summary.Researched,
				)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newSessionsCleanupCmd(app *app) *cobra.Command {
	var maxAge time.Duration

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Evict sessions idle for longer than --max-age",
		RunE: func(cmd *cobra.Command, _ []string) error {
			evicted := app.queries.EvictSessions(maxAge)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "evicted %d session(s)\n", evicted)
			return err
		},
	}

	cleanupCmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "evict sessions idle for longer than this")

	return cleanupCmd
}
