package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/mdblocks/format"
	"github.com/dhamidi/mdblocks/markdown/inline"
)

func newInlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inline <text>...",
		Short: "Run the inline parser over text and print the nodes as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes := inline.Parse(strings.Join(args, " "))
			output, err := format.MarshalInline(nodes)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}
}
