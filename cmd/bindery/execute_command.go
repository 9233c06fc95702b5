package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/executor"
	"bindery/internal/manifest"
)

func newExecuteCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun      bool
		retryFailed bool
	)

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Perform the planned transfers into the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return withLibraryLock(ctx, dryRun, func() error {
				store, err := manifest.Open(cfg.Paths.ReportDir)
				if err != nil {
					return err
				}
				defer store.Close()

				if retryFailed && !dryRun {
					n, err := store.ResetFailed(cmd.Context())
					if err != nil {
						return err
					}
					if n > 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "Requeued %d failed transfers\n", n)
					}
				}

				transferLog, err := executor.OpenTransferLog(cfg.Paths.LogDir)
				if err != nil {
					return err
				}
				defer transferLog.Close()

				exec := executor.New(store, executor.Options{
					VerifyHash: cfg.Executor.VerifyHash,
					DryRun:     dryRun,
				}, logger)

				result, err := exec.Run(cmd.Context(), transferLog)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(),
					"copied=%d skipped=%d missing=%d failed=%d authors_created=%d\n",
					result.Copied, result.Skipped, result.Missing, result.Failed, result.AuthorsCreated)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned transfers without mutating anything")
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "Requeue failed transfers before running")
	return cmd
}
