package cmd

import "github.com/kmee/trade-import/internal/model"

// ImportResult holds the result of importing a single file
type ImportResult struct {
	File        string             `json:"file"`
	Declaration *model.Declaration `json:"declaration,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
