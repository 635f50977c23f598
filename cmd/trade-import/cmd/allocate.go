package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmee/trade-import/internal/allocation"
	"github.com/kmee/trade-import/internal/processor"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate [files...]",
	Short: "Run cost allocation on DI files",
	Long: `Import DI files and distribute addition-level adjustment values
and document-level other costs proportionally across merchandise lines,
producing per-unit cost deltas and final unit prices.

Allocation fails hard on zero denominators: a zero-amount addition
carrying an adjustment is a data error, not a zero result.

Examples:
  trade-import allocate declaration.xml
  trade-import allocate declaration.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAllocate,
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to allocate")
	}

	pipeline := processor.NewPipeline()

	results := make([]*ImportResult, 0, len(files))
	for _, file := range files {
		printVerbose("Allocating: %s\n", file)

		result := allocateFile(pipeline, file)
		results = append(results, result)
	}

	if outputFormat == "table" {
		return outputAllocationTable(os.Stdout, results)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func allocateFile(pipeline *processor.Pipeline, filePath string) *ImportResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	if err := allocation.AllocateAll(pipelineResult.Declaration); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Declaration = pipelineResult.Declaration
	result.Warnings = pipelineResult.Warnings
	return result
}

func outputAllocationTable(w *os.File, results []*ImportResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tADDITION\tLINE\tQTY\tPRICE\tADD/DED UNIT\tFINAL PRICE\tFINAL PRICE BRL")
	fmt.Fprintln(tw, "----\t--------\t----\t---\t-----\t------------\t-----------\t---------------")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", r.File, r.Error)
			continue
		}
		if r.Declaration == nil {
			continue
		}

		for _, add := range r.Declaration.Additions {
			for _, line := range add.Lines {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					r.File,
					add.Number,
					line.Sequence,
					line.Quantity.String(),
					line.PriceUnit.String(),
					line.UnitAdditionDeduction.String(),
					line.FinalPriceUnit.String(),
					line.FinalPriceUnitBRL.String(),
				)
			}
		}
	}

	return tw.Flush()
}
