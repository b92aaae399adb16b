package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/javaparse/format"
	"github.com/dhamidi/javaparse/java/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includeComments bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if includeComments {
				opts = append(opts, parser.WithComments())
			}
			if includePositions {
				opts = append(opts, parser.WithPositions())
			}
			p := parser.ParseCompilationUnit(bytes.NewReader(data), opts...)
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse java file: empty input")
			}

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(os.Stdout)
				if err := enc.EncodeResult(node, p.Diagnostics()); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "tree":
				enc := format.NewTreeEncoder(os.Stdout)
				if p.IncludesPositions() {
					enc = enc.WithPositions()
				}
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode tree: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			for _, d := range p.Diagnostics() {
				fmt.Fprintln(os.Stderr, filename+":"+d.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includeComments, "comments", true, "include comments in the tree")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "include positions in tree output")

	return cmd
}
