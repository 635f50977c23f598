// Package model defines the domain types for Brazilian import declarations
// (DI) and the recomputation rules that keep their derived totals
// consistent.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportMode is the international transport route reported in the DI
type TransportMode string

const (
	TransportUnknown    TransportMode = ""
	TransportMaritime   TransportMode = "maritime"
	TransportFluvial    TransportMode = "fluvial"
	TransportLacustrine TransportMode = "lacustrine"
	TransportAerial     TransportMode = "aerial"
	TransportPostal     TransportMode = "postal"
	TransportRail       TransportMode = "rail"
	TransportRoad       TransportMode = "road"
	TransportConduit    TransportMode = "conduit"
	TransportOwnMeans   TransportMode = "own_means"
	TransportFictInOut  TransportMode = "fict_in_out"
	TransportCourier    TransportMode = "courier"
	TransportInHands    TransportMode = "in_hands"
	TransportTowing     TransportMode = "towing"
)

var transportModesByCode = map[string]TransportMode{
	"01": TransportMaritime,
	"02": TransportFluvial,
	"03": TransportLacustrine,
	"04": TransportAerial,
	"05": TransportPostal,
	"06": TransportRail,
	"07": TransportRoad,
	"08": TransportConduit,
	"09": TransportOwnMeans,
	"10": TransportFictInOut,
	"11": TransportCourier,
	"12": TransportInHands,
	"13": TransportTowing,
}

// TransportModeFromCode maps the SISCOMEX via-transporte code to a mode
func TransportModeFromCode(code string) TransportMode {
	return transportModesByCode[code]
}

// Intermediation is the form of import regarding intermediation
type Intermediation string

const (
	IntermediationUnknown         Intermediation = ""
	IntermediationOwnAccount      Intermediation = "conta_propria"
	IntermediationAccountAndOrder Intermediation = "conta_ordem"
	IntermediationOnCommission    Intermediation = "encomenda"
)

// IntermediationFromCode maps the DI operation type code to an intermediation
func IntermediationFromCode(code string) Intermediation {
	switch code {
	case "1":
		return IntermediationOwnAccount
	case "2":
		return IntermediationAccountAndOrder
	case "3":
		return IntermediationOnCommission
	default:
		return IntermediationUnknown
	}
}

// RequiresThirdParty reports whether this intermediation form demands an
// acquirer or orderer partner.
func (i Intermediation) RequiresThirdParty() bool {
	return i == IntermediationAccountAndOrder || i == IntermediationOnCommission
}

// State is the lifecycle state of a declaration
type State string

const (
	StateDraft     State = "draft"
	StateOpen      State = "open"
	StateLocked    State = "locked"
	StateCancelled State = "cancelled"
)

// Declaration is one Brazilian customs import declaration (DI). It owns its
// additions and other-cost entries; dropping the declaration drops
// everything beneath it.
type Declaration struct {
	DocumentNumber    string    `json:"document_number"`
	DocumentDate      time.Time `json:"document_date"`
	ClearanceLocation string    `json:"customs_clearance_location,omitempty"`
	ClearanceState    string    `json:"customs_clearance_state,omitempty"`
	ClearanceDate     time.Time `json:"customs_clearance_date,omitzero"`

	TransportMode  TransportMode   `json:"transportation_type,omitempty"`
	AFRMM          decimal.Decimal `json:"afrmm_value"`
	Intermediation Intermediation  `json:"intermediary_type,omitempty"`

	// ThirdPartyPartner is the acquirer or orderer reference, required for
	// conta e ordem / encomenda operations.
	ThirdPartyPartner string `json:"third_party_partner,omitempty"`
	// ExportingPartner is supplied by the operator, not parsed from the DI.
	ExportingPartner string `json:"exporting_partner,omitempty"`

	AmountCurrency decimal.Decimal `json:"amount_currency"`
	AmountReais    decimal.Decimal `json:"amount_reais"`

	FreightAmount      decimal.Decimal `json:"freight_amount"`
	FreightCurrency    string          `json:"freight_currency,omitempty"`
	FreightAmountBRL   decimal.Decimal `json:"freight_amount_brl"`
	InsuranceAmount    decimal.Decimal `json:"insurance_amount"`
	InsuranceCurrency  string          `json:"insurance_currency,omitempty"`
	InsuranceAmountBRL decimal.Decimal `json:"insurance_amount_brl"`

	// AmountOtherCostsBRL is scraped from the complementary notes, not
	// derived from the OtherCosts collection. The two aggregation paths are
	// independent.
	AmountOtherCostsBRL decimal.Decimal `json:"amount_other_costs_brl"`

	Notes      string      `json:"notes,omitempty"`
	Additions  []Addition  `json:"additions"`
	OtherCosts []OtherCost `json:"other_costs,omitempty"`

	Imported bool  `json:"is_imported"`
	State    State `json:"state"`
	RawXML   []byte `json:"-"`
}

// RecalculateTotals refreshes the declaration trade-currency and BRL totals
// from its additions. Call after any mutation of the addition set.
func (d *Declaration) RecalculateTotals() {
	amountCurrency := decimal.Zero
	amountReais := decimal.Zero
	for _, add := range d.Additions {
		amountCurrency = amountCurrency.Add(add.AmountCurrency)
		amountReais = amountReais.Add(add.AmountBRL)
	}
	d.AmountCurrency = amountCurrency
	d.AmountReais = amountReais
}

// OtherCostsAllocableTotal sums the other-cost entries that carry the
// allocable flag. This total is reported alongside AmountOtherCostsBRL but
// is not what the allocation engine consumes.
func (d *Declaration) OtherCostsAllocableTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range d.OtherCosts {
		total = total.Add(c.AllocableAmount())
	}
	return total
}

// Validate checks the declaration business rules. It returns a
// *ValidationError describing the first violated rule, or nil.
func (d *Declaration) Validate() error {
	if d.Intermediation.RequiresThirdParty() && d.ThirdPartyPartner == "" {
		return NewValidationError("third_party_partner", "required_for_intermediation",
			"when the intermediation is 'Conta e Ordem' or 'Encomenda' you must provide the acquirer or orderer")
	}
	if d.TransportMode == TransportMaritime && !d.AFRMM.IsPositive() {
		return NewValidationError("afrmm_value", "required_for_maritime",
			"when the international transport route is 'Maritime' you must inform the AFRMM value")
	}
	return nil
}

// Confirm moves a draft declaration to open
func (d *Declaration) Confirm() error {
	if d.State != StateDraft {
		return NewValidationError("state", "confirm_from_draft", "only draft declarations can be confirmed")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	d.State = StateOpen
	return nil
}

// BackToDraft reopens a confirmed declaration for editing
func (d *Declaration) BackToDraft() error {
	if d.State == StateLocked {
		return NewValidationError("state", "locked", "locked declarations cannot go back to draft")
	}
	d.State = StateDraft
	return nil
}

// Cancel cancels the declaration
func (d *Declaration) Cancel() error {
	if d.State == StateLocked {
		return NewValidationError("state", "locked", "locked declarations cannot be cancelled")
	}
	d.State = StateCancelled
	return nil
}

// OtherCost is a named document-level cost entry. Only entries flagged as
// allocable participate in the allocable total.
type OtherCost struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Allocable bool            `json:"is_allocable"`
}

// AllocableAmount returns the amount when the entry is allocable, else zero
func (c OtherCost) AllocableAmount() decimal.Decimal {
	if c.Allocable {
		return c.Amount
	}
	return decimal.Zero
}
