package main

import (
	"fmt"

	"github.com/planlint/planlint"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of planlint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("planlint version %s\n", planlint.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
