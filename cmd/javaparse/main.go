package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "javaparse",
		Short: "An error-tolerant Java source parser",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newExprCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
