package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmee/trade-import/internal/invoice"
	"github.com/kmee/trade-import/internal/model"
)

// ImportResponse is the response for import and allocate endpoints
type ImportResponse struct {
	Declaration *model.Declaration `json:"declaration"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// InvoiceResponse is the response for the invoice endpoint
type InvoiceResponse struct {
	Invoice  *invoice.Draft  `json:"invoice"`
	Total    decimal.Decimal `json:"total"`
	Warnings []string        `json:"warnings,omitempty"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	DocumentNumber      string          `json:"document_number"`
	DocumentDate        time.Time       `json:"document_date"`
	TransportMode       string          `json:"transportation_type,omitempty"`
	Intermediation      string          `json:"intermediary_type,omitempty"`
	Additions           int             `json:"additions"`
	Lines               int             `json:"lines"`
	AmountCurrency      decimal.Decimal `json:"amount_currency"`
	AmountReais         decimal.Decimal `json:"amount_reais"`
	AmountOtherCostsBRL decimal.Decimal `json:"amount_other_costs_brl"`
	Size                int             `json:"size"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Details  string   `json:"details,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
