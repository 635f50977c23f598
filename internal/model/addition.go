package model

import "github.com/shopspring/decimal"

// Addition is one customs "adicao": a tariff line-group bundling
// merchandise items under shared commercial terms. It belongs to exactly
// one declaration.
type Addition struct {
	// Number is unique within the owning declaration, not globally
	Number string `json:"addition_number"`

	// Manufacturer is the resolved partner reference, filled in by the
	// resolution step after parsing.
	Manufacturer string `json:"manufacturer,omitempty"`

	// DeductionValue and AddValue are legacy scalars, largely superseded by
	// the Values entries.
	DeductionValue decimal.Decimal `json:"deduction_value"`
	AddValue       decimal.Decimal `json:"add_value"`

	// Drawback is the drawback concession act number
	Drawback string `json:"drawback,omitempty"`

	TradeCurrency  string          `json:"trade_currency,omitempty"`
	CurrencyRate   decimal.Decimal `json:"currency_rate"`
	AmountCurrency decimal.Decimal `json:"amount_currency"`
	AmountBRL      decimal.Decimal `json:"amount_brl"`

	Values []AdditionValue `json:"values,omitempty"`
	Lines  []Line          `json:"lines"`

	// Derived: sums over Values, refreshed by RecalculateTotals
	AmountAdditionDeduction    decimal.Decimal `json:"amount_addition_deduction"`
	AmountAdditionDeductionBRL decimal.Decimal `json:"amount_addition_deduction_brl"`
}

// RecalculateTotals refreshes the adjustment sums from the Values entries.
// Call after any mutation of the value set.
func (a *Addition) RecalculateTotals() {
	amountCurrency := decimal.Zero
	amountBRL := decimal.Zero
	for _, v := range a.Values {
		amountCurrency = amountCurrency.Add(v.AmountCurrency)
		amountBRL = amountBRL.Add(v.AmountBRL)
	}
	a.AmountAdditionDeduction = amountCurrency
	a.AmountAdditionDeductionBRL = amountBRL
}

// Line returns the line with the given sequence number, or nil
func (a *Addition) Line(sequence int) *Line {
	for i := range a.Lines {
		if a.Lines[i].Sequence == sequence {
			return &a.Lines[i]
		}
	}
	return nil
}

// AdditionValue is one surcharge or deduction entry modifying an addition's
// cost basis. Deductions carry negative amounts; surcharges positive. The
// sign is applied when the entry is built, not here.
type AdditionValue struct {
	Code          string          `json:"code"`
	Denomination  string          `json:"denomination"`
	TradeCurrency string          `json:"trade_currency,omitempty"`
	CurrencyRate  decimal.Decimal `json:"currency_rate"`
	AmountCurrency decimal.Decimal `json:"amount_currency"`
	AmountBRL      decimal.Decimal `json:"amount_brl"`
}

// Line is one merchandise item within an addition. Sequence ordering
// defines allocation identity.
type Line struct {
	Sequence      int             `json:"sequence"`
	ProductRef    string          `json:"product_ref,omitempty"`
	Description   string          `json:"product_description"`
	Quantity      decimal.Decimal `json:"product_qty"`
	UnitOfMeasure string          `json:"product_uom,omitempty"`
	PriceUnit     decimal.Decimal `json:"price_unit"`

	// Derived by Recalculate
	PriceUnitBRL      decimal.Decimal `json:"price_unit_brl"`
	AmountSubtotal    decimal.Decimal `json:"amount_subtotal"`
	AmountBRLSubtotal decimal.Decimal `json:"amount_brl_subtotal"`

	// Populated only by the allocation engine
	AverageAdditionDeduction    decimal.Decimal `json:"average_addition_deduction"`
	AverageAdditionDeductionBRL decimal.Decimal `json:"average_addition_deduction_brl"`
	UnitAdditionDeduction       decimal.Decimal `json:"unit_addition_deduction"`
	UnitAdditionDeductionBRL    decimal.Decimal `json:"unit_addition_deduction_brl"`

	// Derived by Recalculate: base unit price plus the per-unit allocation
	// delta
	FinalPriceUnit    decimal.Decimal `json:"final_price_unit"`
	FinalPriceUnitBRL decimal.Decimal `json:"final_price_unit_brl"`
}

// Recalculate refreshes the line's derived amounts from quantity, unit
// price and the addition's currency rate. Call whenever any of those
// inputs, or the allocation deltas, change.
func (l *Line) Recalculate(rate decimal.Decimal) {
	l.AmountSubtotal = l.Quantity.Mul(l.PriceUnit)
	l.PriceUnitBRL = l.PriceUnit.Mul(rate)
	l.AmountBRLSubtotal = l.Quantity.Mul(l.PriceUnit).Mul(rate)
	l.FinalPriceUnit = l.PriceUnit.Add(l.UnitAdditionDeduction)
	l.FinalPriceUnitBRL = l.PriceUnitBRL.Add(l.UnitAdditionDeductionBRL)
}
