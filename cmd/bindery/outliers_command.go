package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOutliersCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outliers",
		Short: "Flag and resolve non-conforming author directories",
	}
	cmd.AddCommand(newOutliersFlagCommand(ctx))
	cmd.AddCommand(newOutliersResolveCommand(ctx))
	return cmd
}

func newOutliersFlagCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Mark author directories that fail the canonical grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLibraryService(ctx, dryRun)
			if err != nil {
				return err
			}

			return withLibraryLock(ctx, dryRun, func() error {
				result, err := svc.FlagOutliers()
				if err != nil {
					return err
				}
				path, err := writeReportLines(ctx, "outliers_report.txt", result.Lines)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok=%d fixed=%d flagged=%d -> %s\n",
					result.Conforming, result.Fixed, result.Flagged, path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report actions without renaming anything")
	return cmd
}

func newOutliersResolveCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Re-examine flagged directories with a metadata vote",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLibraryService(ctx, dryRun)
			if err != nil {
				return err
			}
			resolver, err := newResolver(ctx)
			if err != nil {
				return err
			}

			return withLibraryLock(ctx, dryRun, func() error {
				result, err := svc.ResolveOutliers(cmd.Context(), resolver)
				if err != nil {
					return err
				}
				path, err := writeReportLines(ctx, "outliers_resolved.txt", result.Lines)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "outliers=%d resolved=%d ambiguous=%d -> %s\n",
					result.Outliers, result.Resolved, result.Ambiguous, path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Vote and report without moving anything")
	return cmd
}
