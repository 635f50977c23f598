package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "trade-import",
	Short: "Process Brazilian import declarations (DI XML)",
	Long: `Trade Import is a CLI tool for processing Brazilian customs import
declarations (DI) in the ListaDeclaracoes XML format.

Supports:
  - Parsing declarations into a normalized financial breakdown
  - Proportional allocation of surcharges/deductions and other costs
    across merchandise lines
  - Business-rule validation (intermediation partner, maritime AFRMM)
  - Vendor invoice draft generation

Examples:
  # Import a single DI file
  trade-import import declaration.xml

  # Run cost allocation and print final unit prices
  trade-import allocate declaration.xml

  # Validate declarations
  trade-import validate *.xml`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
