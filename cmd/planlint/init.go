package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planlint/planlint/pkg/linter"
)

const initConfigFile = ".planlint.yaml"

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Write a .planlint.yaml with the default configuration to the current directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(initConfigFile); err == nil {
			fatal("Refusing to overwrite", fmt.Errorf("%s already exists", initConfigFile))
		}

		cfg := linter.DefaultConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fatal("Failed to marshal config", err)
		}

		if err := os.WriteFile(initConfigFile, data, 0o644); err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Created", initConfigFile)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
