package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/javaparse/java/scanner"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan <directory-or-zip>",
		Short: "Recursively parse all Java sources under a directory or inside a source archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			req := scanner.Request{}
			if filepath.Ext(target) == ".zip" || filepath.Ext(target) == ".jar" {
				req.ZipFile = target
			} else {
				req.Path = target
			}

			s := scanner.New()
			id := s.Submit(req)
			result, ok := s.Wait(id)
			if !ok {
				return fmt.Errorf("scan %s: request lost", target)
			}
			if result.Status == scanner.StatusFailed {
				return fmt.Errorf("scan %s: %s", target, result.Error)
			}

			for _, e := range result.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
			for _, report := range result.Reports {
				if !quiet {
					for _, d := range report.Diagnostics {
						fmt.Fprintln(os.Stderr, report.File+":"+d.String())
					}
				}
			}

			fmt.Printf("%d files scanned, %d with errors\n", len(result.Reports), result.ErrorCount())
			if result.ErrorCount() > 0 {
				return fmt.Errorf("syntax errors found")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-file diagnostics, print the summary only")

	return cmd
}
