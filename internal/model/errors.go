package model

import "fmt"

// MalformedDocumentError indicates the import declaration root element is
// missing or the document cannot be decoded at all. Fatal: nothing of the
// document is usable.
type MalformedDocumentError struct {
	Message string
	Cause   error
}

func (e *MalformedDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed declaration: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed declaration: %s", e.Message)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// NewMalformedDocumentError creates a new malformed document error
func NewMalformedDocumentError(message string, cause error) *MalformedDocumentError {
	return &MalformedDocumentError{Message: message, Cause: cause}
}

// UnsupportedMultiValueError indicates an addition carries more than one
// surcharge or deduction structure. The source format for multi-entry
// adjustments is underspecified, so this is a hard error rather than a
// silent data drop.
type UnsupportedMultiValueError struct {
	AdditionNumber string
	Kind           string
	Count          int
}

func (e *UnsupportedMultiValueError) Error() string {
	return fmt.Sprintf("addition %s: %d %s entries found, at most one is supported",
		e.AdditionNumber, e.Count, e.Kind)
}

// NewUnsupportedMultiValueError creates a new unsupported multi-value error
func NewUnsupportedMultiValueError(additionNumber, kind string, count int) *UnsupportedMultiValueError {
	return &UnsupportedMultiValueError{AdditionNumber: additionNumber, Kind: kind, Count: count}
}

// AllocationDivideByZeroError indicates a zero denominator was hit while
// apportioning adjustment values. A zero-amount addition carrying a nonzero
// adjustment is a data error the operator must see.
type AllocationDivideByZeroError struct {
	AdditionNumber string
	LineSequence   int
	Denominator    string
}

func (e *AllocationDivideByZeroError) Error() string {
	return fmt.Sprintf("allocation failed on addition %s, line %d: %s is zero",
		e.AdditionNumber, e.LineSequence, e.Denominator)
}

// NewAllocationDivideByZeroError creates a new divide-by-zero allocation error
func NewAllocationDivideByZeroError(additionNumber string, lineSequence int, denominator string) *AllocationDivideByZeroError {
	return &AllocationDivideByZeroError{
		AdditionNumber: additionNumber,
		LineSequence:   lineSequence,
		Denominator:    denominator,
	}
}

// ValidationError represents business-rule violations. The core supplies
// the predicate; enforcement at save time belongs to the persistence layer.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}
