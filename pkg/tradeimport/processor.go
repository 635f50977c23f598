package tradeimport

import (
	"context"
	"io"

	"github.com/kmee/trade-import/internal/allocation"
	"github.com/kmee/trade-import/internal/invoice"
	"github.com/kmee/trade-import/internal/model"
	"github.com/kmee/trade-import/internal/processor"
)

// Result holds the outcome of processing one DI document
type Result struct {
	Declaration *Declaration
	Warnings    []string
}

// InvoiceDraft is a vendor invoice draft derived from a declaration
type InvoiceDraft = invoice.Draft

// Processor processes DI documents using the internal pipeline
type Processor struct {
	pipeline *processor.Pipeline
}

// NewProcessor creates a processor with default collaborators
func NewProcessor() *Processor {
	return &Processor{pipeline: processor.NewPipeline()}
}

// Process parses and resolves one DI document
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	result := p.pipeline.ProcessXML(ctx, r)
	if result.Error != nil {
		return nil, result.Error
	}
	return &Result{Declaration: result.Declaration, Warnings: result.Warnings}, nil
}

// ProcessBytes parses and resolves one DI document from a byte slice
func (p *Processor) ProcessBytes(ctx context.Context, data []byte) (*Result, error) {
	result := p.pipeline.ProcessXMLBytes(ctx, data)
	if result.Error != nil {
		return nil, result.Error
	}
	return &Result{Declaration: result.Declaration, Warnings: result.Warnings}, nil
}

// Allocate distributes adjustment values across the lines of every
// addition of the declaration.
func (p *Processor) Allocate(dec *Declaration) error {
	return allocation.AllocateAll(dec)
}

// BuildInvoice confirms the declaration and generates its vendor invoice
// draft.
func (p *Processor) BuildInvoice(dec *Declaration, exportingPartner string) (*InvoiceDraft, error) {
	dec.ExportingPartner = exportingPartner
	if dec.State == model.StateDraft {
		if err := dec.Confirm(); err != nil {
			return nil, err
		}
	}
	return invoice.BuildDraft(dec)
}
