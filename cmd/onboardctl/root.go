package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "onboardctl",
		Short:         "Inspect and process candidate onboarding spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "YAML config overlay (defaults to $CONFIG_FILE)")

	root.AddCommand(newPreviewCmd(), newProcessCmd())
	return root
}
