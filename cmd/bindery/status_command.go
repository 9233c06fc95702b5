package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/manifest"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var batchID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show transfer manifest progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := manifest.Open(cfg.Paths.ReportDir)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := store.Summarize(cmd.Context(), batchID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Total() == 0 {
				fmt.Fprintln(out, "No planned transfers. Run plan first.")
				return nil
			}

			rows := [][]string{
				{"Planned", formatCount(summary.Planned)},
				{"Copied", formatCount(summary.Copied)},
				{"Skipped", formatCount(summary.Skipped)},
				{"Missing", formatCount(summary.Missing)},
				{"Failed", formatCount(summary.Failed)},
				{"Total", formatCount(summary.Total())},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Status", "Count"}, rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Restrict the summary to one plan batch")
	return cmd
}
