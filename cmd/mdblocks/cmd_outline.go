package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/mdblocks/format"
	"github.com/dhamidi/mdblocks/lsp"
	"github.com/dhamidi/mdblocks/markdown"
)

func newOutlineCmd() *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the heading outline of a markdown file",
		Long: `Print the heading outline of a markdown file with line ranges.
Code blocks and tables are listed under the section they appear in.

If no file is provided, reads markdown from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("color") {
				settings.Color = color
			}

			source, err := readInput(args)
			if err != nil {
				return err
			}

			opts := []markdown.Option{markdown.WithPositions(), markdown.WithMaxDepth(settings.MaxDepth)}
			if settings.FrontMatter {
				opts = append(opts, markdown.WithFrontMatter())
			}
			doc, err := markdown.Parse(source, opts...)
			if err != nil {
				log.Warning("parsed without front matter", "error", err)
			}

			styles := format.PlainStyles()
			if settings.Color {
				styles = format.ColorStyles()
			}
			printOutline(os.Stdout, lsp.Outline(doc, lsp.LineCount(source)), styles, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "colorize output")

	return cmd
}

func printOutline(w io.Writer, symbols []*lsp.Symbol, styles format.Styles, depth int) {
	prefix := strings.Repeat("  ", depth)
	for _, s := range symbols {
		var name string
		switch s.Kind {
		case lsp.SymbolHeading:
			name = styles.Heading(s.Detail + " " + s.Name)
		case lsp.SymbolCode:
			name = styles.Code(s.Name)
		default:
			name = styles.Text(s.Name)
		}
		span := styles.Position(fmt.Sprintf("%d-%d", s.Start, s.End))
		fmt.Fprintf(w, "%s%s %s\n", prefix, name, span)
		printOutline(w, s.Children, styles, depth+1)
	}
}
