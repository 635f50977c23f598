package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmee/trade-import/internal/processor"
)

var (
	outputFile string
	timeout    time.Duration
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import DI declaration files",
	Long: `Import one or more DI XML files and print the normalized
financial breakdown: header fields, additions, adjustment values and
merchandise lines with decoded decimal amounts.

Examples:
  trade-import import declaration.xml
  trade-import import *.xml -o results.json
  trade-import import declarations/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	importCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Processing timeout per file")
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	printVerbose("Found %d files to import\n", len(files))

	pipeline := processor.NewPipeline()

	results := make([]*ImportResult, 0, len(files))
	for _, file := range files {
		printVerbose("Importing: %s\n", file)

		result := importFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			printVerbose("  Error: %s\n", result.Error)
		} else {
			printVerbose("  Additions: %d, Warnings: %d\n",
				len(result.Declaration.Additions), len(result.Warnings))
		}
	}

	return outputResults(results)
}

func importFile(pipeline *processor.Pipeline, filePath string) *ImportResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := &ImportResult{File: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	pipelineResult := pipeline.ProcessXMLBytes(ctx, data)
	if pipelineResult.Error != nil {
		result.Error = pipelineResult.Error.Error()
		return result
	}

	result.Declaration = pipelineResult.Declaration
	result.Warnings = pipelineResult.Warnings
	return result
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xml"
}

func outputResults(results []*ImportResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*ImportResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*ImportResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tDI NUMBER\tDATE\tTRANSPORT\tADDITIONS\tAMOUNT\tAMOUNT BRL")
	fmt.Fprintln(tw, "----\t---------\t----\t---------\t---------\t------\t----------")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		if r.Declaration != nil {
			date := ""
			if !r.Declaration.DocumentDate.IsZero() {
				date = r.Declaration.DocumentDate.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				r.File,
				r.Declaration.DocumentNumber,
				date,
				r.Declaration.TransportMode,
				len(r.Declaration.Additions),
				r.Declaration.AmountCurrency.String(),
				r.Declaration.AmountReais.String(),
			)
		}
	}

	return tw.Flush()
}

func outputCSV(w *os.File, results []*ImportResult) error {
	fmt.Fprintln(w, "file,document_number,document_date,transportation_type,intermediary_type,additions,amount_currency,amount_reais,other_costs_brl,error")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s,,,,,,,,,%s\n", r.File, escapeCSV(r.Error))
			continue
		}

		if r.Declaration != nil {
			date := ""
			if !r.Declaration.DocumentDate.IsZero() {
				date = r.Declaration.DocumentDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d,%s,%s,%s,\n",
				r.File,
				r.Declaration.DocumentNumber,
				date,
				r.Declaration.TransportMode,
				r.Declaration.Intermediation,
				len(r.Declaration.Additions),
				r.Declaration.AmountCurrency.String(),
				r.Declaration.AmountReais.String(),
				r.Declaration.AmountOtherCostsBRL.String(),
			)
		}
	}

	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
