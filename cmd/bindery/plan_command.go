package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bindery/internal/inventory"
	"bindery/internal/manifest"
	"bindery/internal/planner"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the source-to-target manifest from the audited inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			entries, err := inventory.LoadEntries(cfg.Paths.ReportDir)
			if err != nil {
				return err
			}
			aliases, err := planner.LoadAliases(cfg.Paths.AliasFile)
			if err != nil {
				return err
			}

			plan := planner.Build(entries, aliases, cfg.Paths.LibraryDir)
			if err := planner.WriteReports(cfg.Paths.ReportDir, plan); err != nil {
				return err
			}

			if !dryRun {
				store, err := manifest.Open(cfg.Paths.ReportDir)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.SavePlan(cmd.Context(), uuid.NewString(), plan.Entries); err != nil {
					return fmt.Errorf("persist plan: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Planned %d transfers, %d authors, %d predicted collisions -> %s\n",
				len(plan.Entries), len(plan.Authors), len(plan.Collisions), cfg.Paths.ReportDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write reports without persisting the plan")
	return cmd
}
