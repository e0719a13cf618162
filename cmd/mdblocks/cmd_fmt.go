package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/mdblocks/format"
	"github.com/dhamidi/mdblocks/markdown"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a markdown file in canonical form",
		Long: `Print a markdown file in canonical form: ATX headings, fenced code,
pipe tables and uniform list markers.

If no file is provided, reads markdown from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) > 0 {
				switch ext := filepath.Ext(args[0]); ext {
				case ".md", ".markdown":
				default:
					return fmt.Errorf("expected .md file, got %s", ext)
				}
			}

			source, err := readInput(args)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrintMarkdown([]byte(source), markdown.WithMaxDepth(settings.MaxDepth))
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(args[0], output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
