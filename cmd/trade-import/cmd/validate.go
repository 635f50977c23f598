package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmee/trade-import/internal/processor"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate DI declaration files",
	Long: `Validate one or more DI files against the declaration business
rules.

Checks performed:
  - Document parses into a declaration (root element present)
  - Third-party partner present for 'Conta e Ordem' / 'Encomenda'
  - AFRMM value informed for maritime transport

Examples:
  trade-import validate declaration.xml
  trade-import validate *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline := processor.NewPipeline()
	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(pipeline, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(pipeline *processor.Pipeline, filePath string) *ValidationResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := &ValidationResult{
		File:     filePath,
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	pipelineResult := pipeline.ProcessXMLBytes(ctx, data)
	if pipelineResult.Error != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("parse error: %v", pipelineResult.Error))
		return result
	}

	dec := pipelineResult.Declaration
	if dec == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "no declaration data extracted")
		return result
	}

	if err := dec.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	if dec.DocumentNumber == "" {
		result.Warnings = append(result.Warnings, "missing document number")
	}
	if dec.DocumentDate.IsZero() {
		result.Warnings = append(result.Warnings, "missing document date")
	}
	if len(dec.Additions) == 0 {
		result.Warnings = append(result.Warnings, "declaration has no additions")
	}
	for _, add := range dec.Additions {
		if len(add.Lines) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("addition %s has no merchandise lines", add.Number))
		}
	}

	result.Warnings = append(result.Warnings, pipelineResult.Warnings...)
	return result
}
