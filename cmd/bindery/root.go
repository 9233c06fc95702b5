package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag  string
		sourceFlag  string
		libraryFlag string
		outFlag     string
	)

	ctx := newCommandContext(&configFlag, &sourceFlag, &libraryFlag, &outFlag)

	rootCmd := &cobra.Command{
		Use:           "bindery",
		Short:         "Consolidate an ebook tree into a one-directory-per-author library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Raw source tree (overrides config)")
	rootCmd.PersistentFlags().StringVar(&libraryFlag, "library", "", "Library root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outFlag, "out", "", "Report directory (overrides config)")

	rootCmd.AddCommand(newAuditCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newExecuteCommand(ctx))
	rootCmd.AddCommand(newSanitizeCommand(ctx))
	rootCmd.AddCommand(newOutliersCommand(ctx))
	rootCmd.AddCommand(newReversedCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
