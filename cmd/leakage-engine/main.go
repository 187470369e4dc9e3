package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "leakage-engine",
		Short:         "Revenue leakage detection engine",
		Long:          "Detects revenue leakage in tabular business data: negative revenue, excessive discounts, duplicates, pricing inconsistencies, and more.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	root.AddCommand(newServeCmd(), newAnalyzeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
