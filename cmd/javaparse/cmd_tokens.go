package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/javaparse/java/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a .java file and list its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(filename))
			for _, tok := range p.Tokens() {
				fmt.Printf("%s\t%v\t%q\n", tok.Span.Start.String(), tok.Kind, tok.Literal)
			}
			return nil
		},
	}
}
