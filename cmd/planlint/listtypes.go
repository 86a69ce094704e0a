package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planlint/planlint/pkg/format"
)

var listTypesCmd = &cobra.Command{
	Use:   "list-types",
	Short: "List the registered document types",
	Long:  `List every document type in the schema registry, grouped by lifecycle category.`,
	Run: func(cmd *cobra.Command, args []string) {
		l := newLinter()

		f := &format.Formatter{Color: l.Config().Output.Color}
		fmt.Print(f.DocumentTypes(l.DocumentTypes()))
	},
}

func init() {
	rootCmd.AddCommand(listTypesCmd)
}
