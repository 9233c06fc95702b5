package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/validate"
)

// errValidationIssues makes the command exit non-zero when invariants are
// violated, without printing a redundant error line.
type errValidationIssues struct {
	count int
}

func (e errValidationIssues) Error() string {
	return fmt.Sprintf("validation found %d issues", e.count)
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var skipRaw bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every library invariant (read-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := validate.Options{
				LibraryRoot: cfg.Paths.LibraryDir,
				Policy:      ctx.policy(),
			}
			if !skipRaw {
				opts.RawRoot = cfg.Paths.SourceDir
			}

			report, err := validate.Run(opts)
			if err != nil {
				return err
			}
			if err := validate.WriteReport(cfg.Paths.ReportDir, report); err != nil {
				return err
			}

			rows := [][]string{
				{"Authors", formatCount(report.Authors)},
				{"Outliers", formatCount(report.Outliers)},
				{"Library books", formatCount(report.LibraryBooks)},
			}
			if opts.RawRoot != "" {
				rows = append(rows, []string{"Raw books", formatCount(report.RawBooks)})
			}
			rows = append(rows, []string{"Issues", formatCount(len(report.Issues))})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "Count"}, rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintln(out, report.Coverage())

			if len(report.Issues) > 0 {
				for _, issue := range report.Issues {
					fmt.Fprintln(out, "ISSUE\t"+issue)
				}
				return errValidationIssues{count: len(report.Issues)}
			}
			fmt.Fprintln(out, "Library is consistent")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipRaw, "skip-raw", false, "Skip the raw-vs-library book count comparison")
	return cmd
}
