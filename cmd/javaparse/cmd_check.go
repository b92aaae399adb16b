package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/javaparse/java/parser"
	"github.com/dhamidi/javaparse/java/scanner"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func newCheckCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check <file-or-directory>...",
		Short: "Parse files and report diagnostics, failing on errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 0
			if verbose {
				verbosity = 1
			}
			commonlog.Configure(verbosity, nil)
			log := commonlog.GetLogger("javaparse.check")

			failed := false
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}

				if info.IsDir() {
					if checkDirectory(path, log) {
						failed = true
					}
					continue
				}

				log.Infof("checking %s", path)
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read java file: %w", err)
				}

				p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(path))
				p.Finish()
				for _, d := range p.Diagnostics() {
					fmt.Fprintln(os.Stderr, path+":"+d.String())
					if d.Severity == parser.SeverityError {
						failed = true
					}
				}
			}
			if failed {
				return fmt.Errorf("syntax errors found")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every file as it is checked")

	return cmd
}

func checkDirectory(path string, log commonlog.Logger) bool {
	s := scanner.New()
	id := s.Submit(scanner.Request{Path: path})
	result, _ := s.Wait(id)

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}

	failed := false
	for _, report := range result.Reports {
		log.Infof("checking %s", report.File)
		for _, d := range report.Diagnostics {
			fmt.Fprintln(os.Stderr, report.File+":"+d.String())
		}
		if report.HasErrors() {
			failed = true
		}
	}
	return failed
}
