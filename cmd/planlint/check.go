package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/format"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a single document",
	Long: `Validate one document as a batch of one. Internal references to
other documents will be reported as unresolved; use 'lint' to validate a
whole document set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		l := newLinter()
		result := l.LintFile(args[0])

		renderResults(l.Config(), []*core.ValidationResult{result})

		stats := format.Collect([]*core.ValidationResult{result})
		if stats.TotalErrors > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
