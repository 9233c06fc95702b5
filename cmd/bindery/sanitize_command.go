package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSanitizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Repair the library tree in place",
		Long: `Sanitize merges author directories that share a canonical identity,
renames directories and book files to their normalized forms, and removes
files outside the extension policy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newLibraryService(ctx, dryRun)
			if err != nil {
				return err
			}

			return withLibraryLock(ctx, dryRun, func() error {
				result, err := svc.Sanitize()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"merged_items=%d name_fixes=%d file_fixes=%d files_removed=%d\n",
					result.MergedItems, result.NameFixes, result.FileFixes, result.FilesRemoved)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report repairs without mutating anything")
	return cmd
}
