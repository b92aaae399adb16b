package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/javaparse/format"
	"github.com/dhamidi/javaparse/java/parser"
	"github.com/spf13/cobra"
)

func newExprCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "expr <expression>",
		Short: "Parse a standalone Java expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.ParseExpression(strings.NewReader(args[0]))
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse expression: empty input")
			}

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(os.Stdout)
				if err := enc.EncodeResult(node, p.Diagnostics()); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			case "tree":
				if err := format.NewTreeEncoder(os.Stdout).Encode(node); err != nil {
					return fmt.Errorf("encode tree: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree)")

	return cmd
}
