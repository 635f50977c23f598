// Package tradeimport provides a public API for processing Brazilian
// import declarations (DI).
//
// This package exposes the core types for parsing DI XML documents,
// running proportional cost allocation, and generating vendor invoice
// drafts.
//
// Example usage:
//
//	p := tradeimport.NewProcessor()
//	result, err := p.Process(ctx, reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Declaration.AmountReais)
package tradeimport

import (
	"github.com/kmee/trade-import/internal/model"
)

// Re-export core types for public API
type (
	Declaration    = model.Declaration
	Addition       = model.Addition
	AdditionValue  = model.AdditionValue
	Line           = model.Line
	OtherCost      = model.OtherCost
	TransportMode  = model.TransportMode
	Intermediation = model.Intermediation
	State          = model.State
)

// Re-export transport modes
const (
	TransportMaritime   = model.TransportMaritime
	TransportFluvial    = model.TransportFluvial
	TransportLacustrine = model.TransportLacustrine
	TransportAerial     = model.TransportAerial
	TransportPostal     = model.TransportPostal
	TransportRail       = model.TransportRail
	TransportRoad       = model.TransportRoad
	TransportConduit    = model.TransportConduit
	TransportOwnMeans   = model.TransportOwnMeans
	TransportFictInOut  = model.TransportFictInOut
	TransportCourier    = model.TransportCourier
	TransportInHands    = model.TransportInHands
	TransportTowing     = model.TransportTowing
)

// Re-export intermediation forms
const (
	IntermediationOwnAccount      = model.IntermediationOwnAccount
	IntermediationAccountAndOrder = model.IntermediationAccountAndOrder
	IntermediationOnCommission    = model.IntermediationOnCommission
)

// Re-export lifecycle states
const (
	StateDraft     = model.StateDraft
	StateOpen      = model.StateOpen
	StateLocked    = model.StateLocked
	StateCancelled = model.StateCancelled
)

// Re-export error types
type (
	MalformedDocumentError      = model.MalformedDocumentError
	UnsupportedMultiValueError  = model.UnsupportedMultiValueError
	AllocationDivideByZeroError = model.AllocationDivideByZeroError
	ValidationError             = model.ValidationError
)
