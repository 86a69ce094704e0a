package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planlint/planlint/pkg/linter"
)

var configShow bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration information",
	Long: `Report which config file is in use. With --show, print the effective
configuration after file discovery and flag overrides, as YAML.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !configShow {
			switch {
			case configPath != "":
				fmt.Println("Config file:", configPath)
			default:
				if found, ok := linter.FindConfigFile(); ok {
					fmt.Println("Config file:", found)
				} else {
					fmt.Println("No config file found, using defaults")
				}
			}
			return
		}

		cfg, err := linter.LoadConfig(configPath)
		if err != nil {
			fatal("Failed to load config", err)
		}
		if schemaPath != "" {
			cfg.SchemaPath = schemaPath
		}

		out, err := renderConfig(cfg)
		if err != nil {
			fatal("Failed to marshal config", err)
		}
		fmt.Print(out)
	},
}

func renderConfig(cfg linter.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configShow, "show", false, "Print the effective configuration")
}
