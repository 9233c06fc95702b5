package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReversedCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reversed",
		Short: "Detect and merge transposed author-name directories",
	}
	cmd.AddCommand(newReversedReportCommand(ctx))
	cmd.AddCommand(newReversedMergeCommand(ctx))
	return cmd
}

func newReversedReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "List directory pairs whose name tokens are transpositions",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLibraryService(ctx, true)
			if err != nil {
				return err
			}

			pairs, err := svc.ReversedPairs()
			if err != nil {
				return err
			}

			lines := make([]string, 0, len(pairs))
			for _, pair := range pairs {
				lines = append(lines, pair.A+"\t"+pair.B)
			}
			path, err := writeReportLines(ctx, "reversed_pairs.txt", lines)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d reversed pairs -> %s\n", len(pairs), path)
			return nil
		},
	}
}

func newReversedMergeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Consolidate each reversed pair into the voted identity",
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
				result, err := svc.MergeReversedPairs(cmd.Context(), resolver)
				if err != nil {
					return err
				}
				path, err := writeReportLines(ctx, "reversed_merged.txt", result.Lines)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pairs=%d merged=%d -> %s\n",
					result.Pairs, result.Merged, path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Vote and report without moving anything")
	return cmd
}
