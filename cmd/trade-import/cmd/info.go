package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kmee/trade-import/internal/processor"
	"github.com/kmee/trade-import/internal/siscomex"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show DI file information",
	Long: `Show header information and the calculated-values table scraped
from the complementary notes of a DI file.

Examples:
  trade-import info declaration.xml
  trade-import info declaration.xml -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// InfoResult holds the header summary of one DI file
type InfoResult struct {
	File                string                     `json:"file"`
	DocumentNumber      string                     `json:"document_number"`
	DocumentDate        string                     `json:"document_date,omitempty"`
	ClearanceLocation   string                     `json:"customs_clearance_location,omitempty"`
	TransportMode       string                     `json:"transportation_type,omitempty"`
	Intermediation      string                     `json:"intermediary_type,omitempty"`
	AFRMM               decimal.Decimal            `json:"afrmm_value"`
	Additions           int                        `json:"additions"`
	Lines               int                        `json:"lines"`
	AmountCurrency      decimal.Decimal            `json:"amount_currency"`
	AmountReais         decimal.Decimal            `json:"amount_reais"`
	AmountOtherCostsBRL decimal.Decimal            `json:"amount_other_costs_brl"`
	CalcTable           map[string]decimal.Decimal `json:"calc_table,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	pipeline := processor.NewPipeline()
	pipelineResult := pipeline.ProcessXMLBytes(ctx, data)
	if pipelineResult.Error != nil {
		return pipelineResult.Error
	}

	dec := pipelineResult.Declaration
	lines := 0
	for _, add := range dec.Additions {
		lines += len(add.Lines)
	}

	result := &InfoResult{
		File:                args[0],
		DocumentNumber:      dec.DocumentNumber,
		ClearanceLocation:   dec.ClearanceLocation,
		TransportMode:       string(dec.TransportMode),
		Intermediation:      string(dec.Intermediation),
		AFRMM:               dec.AFRMM,
		Additions:           len(dec.Additions),
		Lines:               lines,
		AmountCurrency:      dec.AmountCurrency,
		AmountReais:         dec.AmountReais,
		AmountOtherCostsBRL: dec.AmountOtherCostsBRL,
		CalcTable:           siscomex.ExtractCalcTable(dec.Notes),
	}
	if !dec.DocumentDate.IsZero() {
		result.DocumentDate = dec.DocumentDate.Format("2006-01-02")
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("File:               %s\n", result.File)
	fmt.Printf("DI number:          %s\n", result.DocumentNumber)
	fmt.Printf("Date:               %s\n", result.DocumentDate)
	fmt.Printf("Clearance location: %s\n", result.ClearanceLocation)
	fmt.Printf("Transport:          %s\n", result.TransportMode)
	fmt.Printf("Intermediation:     %s\n", result.Intermediation)
	fmt.Printf("AFRMM:              %s\n", result.AFRMM.String())
	fmt.Printf("Additions:          %d (%d lines)\n", result.Additions, result.Lines)
	fmt.Printf("Amount (currency):  %s\n", result.AmountCurrency.String())
	fmt.Printf("Amount (BRL):       %s\n", result.AmountReais.String())
	fmt.Printf("Other costs (BRL):  %s\n", result.AmountOtherCostsBRL.String())
	if len(result.CalcTable) > 0 {
		fmt.Println("Calculated values:")
		for label, amount := range result.CalcTable {
			fmt.Printf("  %-20s %s\n", label+":", amount.String())
		}
	}

	return nil
}
