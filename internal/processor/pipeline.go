// Package processor wires the declaration parser, the partner directory
// and the business-rule checks into one import pipeline.
package processor

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kmee/trade-import/internal/currency"
	"github.com/kmee/trade-import/internal/model"
	"github.com/kmee/trade-import/internal/partner"
	dixml "github.com/kmee/trade-import/internal/parser/xml"
)

// Result holds the outcome of processing one DI file
type Result struct {
	Declaration *model.Declaration
	Warnings    []string
	Error       error
}

// Pipeline runs parse, manufacturer resolution and validation
type Pipeline struct {
	parser   *dixml.Parser
	partners partner.Directory
	logger   *log.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithCurrencyResolver sets the currency resolver used by the parser
func WithCurrencyResolver(r currency.Resolver) Option {
	return func(p *Pipeline) {
		p.parser = dixml.NewParser(r)
	}
}

// WithPartnerDirectory sets the directory used to resolve manufacturers
func WithPartnerDirectory(d partner.Directory) Option {
	return func(p *Pipeline) {
		p.partners = d
	}
}

// WithLogger sets the pipeline logger
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline creates a pipeline with default collaborators: the built-in
// currency registry and an in-memory partner directory.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		parser:   dixml.NewParser(currency.NewRegistry()),
		partners: partner.NewMemoryDirectory(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessXML processes one DI file from a reader
func (p *Pipeline) ProcessXML(ctx context.Context, r io.Reader) *Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{Error: model.NewMalformedDocumentError("failed to read input", err)}
	}
	return p.ProcessXMLBytes(ctx, data)
}

// ProcessXMLBytes processes one DI file: parse, resolve manufacturer
// candidates through the partner directory, run the business-rule checks.
// Rule violations become warnings here; enforcing them is the persistence
// layer's job at save time.
func (p *Pipeline) ProcessXMLBytes(ctx context.Context, data []byte) *Result {
	draft, err := p.parser.ParseBytes(ctx, data)
	if err != nil {
		return &Result{Error: err}
	}

	result := &Result{Declaration: draft.Declaration}
	dec := draft.Declaration

	for _, cand := range draft.Manufacturers {
		ref, err := p.partners.FindOrCreateManufacturer(cand.Name, partner.Address{
			Street: cand.Street,
			Number: cand.Number,
			City:   cand.City,
			State:  cand.State,
		})
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("addition %s: manufacturer %q not resolved: %v", cand.AdditionNumber, cand.Name, err))
			continue
		}
		for i := range dec.Additions {
			if dec.Additions[i].Number == cand.AdditionNumber {
				dec.Additions[i].Manufacturer = ref
			}
		}
	}

	if err := dec.Validate(); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}

	p.logger.Debug("declaration processed",
		"document", dec.DocumentNumber,
		"additions", len(dec.Additions),
		"warnings", len(result.Warnings))

	return result
}
