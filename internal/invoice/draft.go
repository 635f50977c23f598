// Package invoice builds vendor invoice drafts from confirmed import
// declarations. Construction of the actual accounting document belongs to
// the accounting collaborator; this only shapes the draft.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kmee/trade-import/internal/model"
)

// TypeVendorInvoice is the accounting document type of a DI invoice
const TypeVendorInvoice = "in_invoice"

// Draft is a vendor invoice draft derived from a declaration
type Draft struct {
	Type    string      `json:"type"`
	Partner string      `json:"partner,omitempty"`
	Date    time.Time   `json:"invoice_date"`
	Origin  string      `json:"invoice_origin"`
	Lines   []DraftLine `json:"invoice_line_ids"`
}

// DraftLine is one invoice draft line
type DraftLine struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	PriceUnit decimal.Decimal `json:"price_unit"`
}

// Total sums quantity times unit price over the lines
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Quantity.Mul(l.PriceUnit))
	}
	return total
}

// BuildDraft creates the invoice draft for a confirmed declaration: one
// line per addition, priced at the addition BRL amount. The partner is the
// exporting partner, the origin the DI number.
func BuildDraft(dec *model.Declaration) (*Draft, error) {
	if dec.State != model.StateOpen {
		return nil, model.NewValidationError("state", "invoice_from_open",
			"only confirmed declarations can generate invoices")
	}

	draft := &Draft{
		Type:    TypeVendorInvoice,
		Partner: dec.ExportingPartner,
		Date:    dec.DocumentDate,
		Origin:  dec.DocumentNumber,
	}

	for _, add := range dec.Additions {
		draft.Lines = append(draft.Lines, DraftLine{
			Name:      "Import Declaration " + dec.DocumentNumber + " - addition " + add.Number,
			Quantity:  decimal.NewFromInt(1),
			PriceUnit: add.AmountBRL,
		})
	}

	return draft, nil
}
