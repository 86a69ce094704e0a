package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	createOutput string
	createName   string
)

var createCmd = &cobra.Command{
	Use:   "create [type] [id]",
	Short: "Create a document from a type's template",
	Long: `Create a skeleton document for a registered type: title, required
header attributes, abstract block and required sections. Writes to
<id>.adoc unless --output is given.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		docType, id := args[0], args[1]

		name := createName
		if name == "" {
			name = id
		}

		l := newLinter()
		content, err := l.Template(docType, id, name)
		if err != nil {
			fatal("Failed to create document", err)
		}

		path := createOutput
		if path == "" {
			path = id + ".adoc"
		}
		if _, err := os.Stat(path); err == nil {
			fatal("Refusing to overwrite", fmt.Errorf("%s already exists", path))
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fatal("Failed to create directory", err)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fatal("Failed to write document", err)
		}

		fmt.Printf("Created %s (%s)\n", path, docType)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "Output file path (default: <id>.adoc)")
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Human-readable name used in the title (default: the id)")
}
