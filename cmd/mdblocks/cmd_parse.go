package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/mdblocks/format"
	"github.com/dhamidi/mdblocks/markdown"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeInline bool
	var includePositions bool
	var frontMatter bool
	var color bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a markdown file and dump its blocks",
		Long: `Parse a markdown file and print its block structure.

If no file is provided, reads markdown from stdin.
Defaults come from the config file; flags override them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("format") {
				settings.Format = outputFormat
			}
			if flags.Changed("inline") {
				settings.Inline = includeInline
			}
			if flags.Changed("positions") {
				settings.Positions = includePositions
			}
			if flags.Changed("front-matter") {
				settings.FrontMatter = frontMatter
			}
			if flags.Changed("color") {
				settings.Color = color
			}
			if flags.Changed("max-depth") {
				settings.MaxDepth = maxDepth
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			source, err := readInput(args)
			if err != nil {
				return err
			}

			doc, err := markdown.Parse(source, settings.Options()...)
			if err != nil {
				log.Warning("parsed without front matter", "error", err)
			}

			encoder, err := format.NewEncoder(settings.Format, os.Stdout, format.WithColor(settings.Color))
			if err != nil {
				return err
			}
			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, yaml, tree, markdown)")
	cmd.Flags().BoolVar(&includeInline, "inline", false, "run the inline parser over headings, paragraphs and table cells")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source line spans")
	cmd.Flags().BoolVar(&frontMatter, "front-matter", true, "read a leading YAML front matter block")
	cmd.Flags().BoolVar(&color, "color", false, "colorize tree output")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 1000, "maximum nesting of lists and blockquotes")

	return cmd
}
