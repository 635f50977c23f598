// Package allocation distributes addition-level adjustment values and the
// document-level other-cost aggregate proportionally across merchandise
// lines, down to per-unit deltas.
package allocation

import (
	"github.com/kmee/trade-import/internal/model"
)

// Allocate apportions the addition's adjustment totals across its lines,
// mutating them in place. It is operator-invoked, not run on every edit:
// the cross-entity aggregates it reads may not be finalized earlier.
//
// Per line L of addition A within declaration D:
//
//	avg_cost_brl          = D.other_costs_brl * L.subtotal_brl / A.amount_brl
//	avg_add_deduction     = A.add_deduction * L.subtotal / A.amount_currency
//	unit_add_deduction    = avg_add_deduction / L.qty
//	avg_add_deduction_brl = |A.add_deduction_brl * L.subtotal_brl / D.amount_reais| + avg_cost_brl
//	unit_add_deduction_brl = (A.add_deduction_brl * L.subtotal_brl / A.amount_brl) / L.qty
//
// The BRL average keeps the magnitude of the primary term while the trade
// currency side preserves sign. That asymmetry is intentional and pinned
// by tests; do not "fix" it without an explicit rule change.
func Allocate(add *model.Addition, dec *model.Declaration) error {
	for i := range add.Lines {
		line := &add.Lines[i]

		// A zero denominator under a nonzero adjustment is a data error
		// the operator must see, not a silent zero.
		switch {
		case add.AmountBRL.IsZero():
			return model.NewAllocationDivideByZeroError(add.Number, line.Sequence, "addition BRL amount")
		case add.AmountCurrency.IsZero():
			return model.NewAllocationDivideByZeroError(add.Number, line.Sequence, "addition trade-currency amount")
		case dec.AmountReais.IsZero():
			return model.NewAllocationDivideByZeroError(add.Number, line.Sequence, "declaration BRL amount")
		case line.Quantity.IsZero():
			return model.NewAllocationDivideByZeroError(add.Number, line.Sequence, "line quantity")
		}

		avgCostBRL := dec.AmountOtherCostsBRL.Mul(line.AmountBRLSubtotal).Div(add.AmountBRL)

		line.AverageAdditionDeduction = add.AmountAdditionDeduction.
			Mul(line.AmountSubtotal).Div(add.AmountCurrency)
		line.UnitAdditionDeduction = line.AverageAdditionDeduction.Div(line.Quantity)

		line.AverageAdditionDeductionBRL = add.AmountAdditionDeductionBRL.
			Mul(line.AmountBRLSubtotal).Div(dec.AmountReais).Abs().
			Add(avgCostBRL)

		line.UnitAdditionDeductionBRL = add.AmountAdditionDeductionBRL.
			Mul(line.AmountBRLSubtotal).Div(add.AmountBRL).
			Div(line.Quantity)

		// Fold the fresh per-unit deltas into the final unit prices
		line.Recalculate(add.CurrencyRate)
	}
	return nil
}

// AllocateAll runs Allocate over every addition of the declaration,
// sequentially. Additions share no mutable state, but correctness, not
// throughput, is the goal here.
func AllocateAll(dec *model.Declaration) error {
	for i := range dec.Additions {
		if err := Allocate(&dec.Additions[i], dec); err != nil {
			return err
		}
	}
	return nil
}
