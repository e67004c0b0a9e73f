package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stockscout",
		Short:         "stockscout: research stocks and build investment reports",
		Long:          "stockscout runs a research pipeline per ticker (research, analyze, report), keeps an append-only memory of past reports, and compares batches of stocks side by side.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newResearchCmd(app),
		newBatchCmd(app),
		newHistoryCmd(app),
		newSessionsCmd(app),
	)

	return rootCmd
}
