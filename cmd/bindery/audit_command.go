package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/inventory"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Inventory the raw source tree (read-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			entries, err := inventory.Scan(cmd.Context(), cfg.Paths.SourceDir, ctx.policy(), logger)
			if err != nil {
				return fmt.Errorf("audit source tree: %w", err)
			}
			if err := inventory.WriteReports(cfg.Paths.ReportDir, entries); err != nil {
				return err
			}

			hinted := 0
			for _, entry := range entries {
				if entry.HintSource != "" {
					hinted++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Audited %d files (%d with author hints) -> %s\n",
				len(entries), hinted, cfg.Paths.ReportDir)
			return nil
		},
	}
}
