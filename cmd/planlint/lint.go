package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/pkg/core"
	"github.com/planlint/planlint/pkg/format"
	"github.com/planlint/planlint/pkg/linter"
)

var (
	lintFormat         string
	lintOutputFile     string
	lintExclude        []string
	lintNoCheckIDs     bool
	lintNoCheckRefs    bool
	lintFailOnWarnings bool
	lintNoColor        bool
	lintWorkers        int
)

var lintCmd = &cobra.Command{
	Use:   "lint [patterns...]",
	Short: "Lint planning documents",
	Long: `Lint every document matching the given glob patterns as one batch.
Cross-references and duplicate IDs are checked across the whole batch.
Defaults to '**/*.adoc' when no pattern is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"**/*.adoc"}
		}

		l := newLinter()

		results, err := l.LintFiles(context.Background(), patterns)
		if err != nil {
			fatal("Lint failed", err)
		}
		if results == nil {
			fmt.Fprintln(os.Stderr, "No files matched the given patterns")
			os.Exit(1)
		}

		renderResults(l.Config(), results)

		stats := format.Collect(results)
		if stats.TotalErrors > 0 {
			os.Exit(1)
		}
		if lintFailOnWarnings && stats.TotalWarnings > 0 {
			os.Exit(1)
		}
	},
}

// newLinter builds a Linter from the persistent flags, folding every
// flag override into one loaded configuration before construction.
func newLinter() *linter.Linter {
	cfg, err := linter.LoadConfig(configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}
	if schemaPath != "" {
		cfg.SchemaPath = schemaPath
	}
	if lintNoCheckIDs {
		cfg.Rules.CheckIDUniqueness = false
	}
	if lintNoCheckRefs {
		cfg.Rules.ValidateReferences = false
	}
	if lintFormat != "" {
		cfg.Output.Format = lintFormat
	}
	if lintNoColor {
		cfg.Output.Color = false
	}
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, lintExclude...)

	opts := []linter.Option{
		linter.WithLogger(slog.Default()),
		linter.WithConfig(&cfg),
	}
	if lintWorkers > 0 {
		opts = append(opts, linter.WithWorkers(lintWorkers))
	}

	l, err := linter.New(opts...)
	if err != nil {
		fatal("Failed to initialize linter", err)
	}
	return l
}

// renderResults formats results per the output config and writes them to
// stdout or the --output file.
func renderResults(cfg linter.Config, results []*core.ValidationResult) {
	out, err := format.ParseOutput(cfg.Output.Format)
	if err != nil {
		fatal("Invalid output format", err)
	}

	color := cfg.Output.Color && lintOutputFile == ""
	f := &format.Formatter{Color: color, ShowSuggestions: cfg.Output.ShowSuggestions}

	rendered, err := f.Render(out, results, verbose || cfg.Output.Verbose)
	if err != nil {
		fatal("Failed to render results", err)
	}

	if lintOutputFile != "" {
		if err := os.WriteFile(lintOutputFile, []byte(rendered), 0o644); err != nil {
			fatal("Failed to write output file", err)
		}
		return
	}

	fmt.Print(rendered)
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().StringVarP(&lintFormat, "format", "f", "", "Output format: text, json or junit")
	lintCmd.Flags().StringVarP(&lintOutputFile, "output", "o", "", "Write the report to a file instead of stdout")
	lintCmd.Flags().StringSliceVar(&lintExclude, "exclude", nil, "Additional exclude patterns")
	lintCmd.Flags().BoolVar(&lintNoCheckIDs, "no-check-ids", false, "Skip duplicate ID detection")
	lintCmd.Flags().BoolVar(&lintNoCheckRefs, "no-check-refs", false, "Skip cross-reference resolution")
	lintCmd.Flags().BoolVar(&lintFailOnWarnings, "fail-on-warnings", false, "Exit non-zero when any warning is reported")
	lintCmd.Flags().BoolVar(&lintNoColor, "no-color", false, "Disable colored output")
	lintCmd.Flags().IntVar(&lintWorkers, "workers", 0, "Number of parallel validation workers (default 4)")
}
