package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Re-lint on file changes",
	Long: `Lint the matching documents, then watch the filesystem and re-lint
the whole batch whenever a matching file changes. Stops on Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"**/*.adoc"}
		}

		l := newLinter()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := l.Watch(ctx, patterns, func(results []*core.ValidationResult) {
			renderResults(l.Config(), results)
			fmt.Println()
		})
		if err != nil {
			fatal("Watch failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
