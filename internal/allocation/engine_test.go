package allocation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmee/trade-import/internal/allocation"
	"github.com/kmee/trade-import/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(expected)), "expected %s, got %s", expected, got.String())
}

// fixtureDeclaration builds a single-addition declaration with a net
// deduction of 100 USD / 520 BRL spread over two equal-subtotal lines.
func fixtureDeclaration() *model.Declaration {
	rate := d("5.2")
	add := model.Addition{
		Number:         "001",
		TradeCurrency:  "USD",
		CurrencyRate:   rate,
		AmountCurrency: d("1000"),
		AmountBRL:      d("5200"),
		Values: []model.AdditionValue{
			{Code: "16", AmountCurrency: d("150"), AmountBRL: d("780")},
			{Code: "99", AmountCurrency: d("-250"), AmountBRL: d("-1300")},
		},
		Lines: []model.Line{
			{Sequence: 1, Quantity: d("10"), PriceUnit: d("50")},
			{Sequence: 2, Quantity: d("5"), PriceUnit: d("100")},
		},
	}
	add.RecalculateTotals()
	for i := range add.Lines {
		add.Lines[i].Recalculate(rate)
	}

	dec := &model.Declaration{
		DocumentNumber:      "2300000001",
		AmountOtherCostsBRL: d("154.23"),
		Additions:           []model.Addition{add},
	}
	dec.RecalculateTotals()
	return dec
}

func TestAllocate(t *testing.T) {
	dec := fixtureDeclaration()
	add := &dec.Additions[0]

	require.NoError(t, allocation.Allocate(add, dec))

	line1 := add.Line(1)
	require.NotNil(t, line1)
	assertDecimal(t, "-50", line1.AverageAdditionDeduction)
	assertDecimal(t, "-5", line1.UnitAdditionDeduction)
	assertDecimal(t, "45", line1.FinalPriceUnit)
	assertDecimal(t, "-26", line1.UnitAdditionDeductionBRL)
	assertDecimal(t, "234", line1.FinalPriceUnitBRL)

	line2 := add.Line(2)
	require.NotNil(t, line2)
	assertDecimal(t, "-50", line2.AverageAdditionDeduction)
	assertDecimal(t, "-10", line2.UnitAdditionDeduction)
	assertDecimal(t, "90", line2.FinalPriceUnit)
	assertDecimal(t, "-52", line2.UnitAdditionDeductionBRL)
	assertDecimal(t, "468", line2.FinalPriceUnitBRL)
}

func TestAllocate_ConservesTotal(t *testing.T) {
	dec := fixtureDeclaration()
	add := &dec.Additions[0]

	require.NoError(t, allocation.Allocate(add, dec))

	sum := decimal.Zero
	for _, line := range add.Lines {
		sum = sum.Add(line.AverageAdditionDeduction)
	}
	assert.True(t, sum.Equal(add.AmountAdditionDeduction),
		"line averages must sum back to the addition total, got %s", sum.String())
}

func TestAllocate_BRLAverageUsesMagnitude(t *testing.T) {
	dec := fixtureDeclaration()
	add := &dec.Additions[0]

	require.NoError(t, allocation.Allocate(add, dec))

	// The net adjustment is a deduction, yet the BRL average comes out
	// positive: |−520 · 2600/5200| + 154.23 · 2600/5200 = 260 + 77.115.
	// The trade-currency average keeps its sign. Pinned on purpose.
	line := add.Line(1)
	assertDecimal(t, "337.115", line.AverageAdditionDeductionBRL)
	assertDecimal(t, "-50", line.AverageAdditionDeduction)
	assert.True(t, line.AverageAdditionDeductionBRL.IsPositive())
}

func TestAllocate_OtherCostsShare(t *testing.T) {
	dec := fixtureDeclaration()
	add := &dec.Additions[0]

	// Neutralize the adjustment so only the other-costs term remains
	add.Values = nil
	add.RecalculateTotals()

	require.NoError(t, allocation.Allocate(add, dec))

	// 154.23 * 2600/5200 per line
	assertDecimal(t, "77.115", add.Line(1).AverageAdditionDeductionBRL)
	assertDecimal(t, "77.115", add.Line(2).AverageAdditionDeductionBRL)
}

func TestAllocate_DivideByZero(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(dec *model.Declaration)
		denominator string
	}{
		{
			name: "addition BRL amount",
			mutate: func(dec *model.Declaration) {
				dec.Additions[0].AmountBRL = decimal.Zero
			},
			denominator: "addition BRL amount",
		},
		{
			name: "addition trade-currency amount",
			mutate: func(dec *model.Declaration) {
				dec.Additions[0].AmountCurrency = decimal.Zero
			},
			denominator: "addition trade-currency amount",
		},
		{
			name: "declaration BRL amount",
			mutate: func(dec *model.Declaration) {
				dec.AmountReais = decimal.Zero
			},
			denominator: "declaration BRL amount",
		},
		{
			name: "line quantity",
			mutate: func(dec *model.Declaration) {
				dec.Additions[0].Lines[0].Quantity = decimal.Zero
			},
			denominator: "line quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := fixtureDeclaration()
			tt.mutate(dec)

			err := allocation.Allocate(&dec.Additions[0], dec)
			require.Error(t, err)

			var zerr *model.AllocationDivideByZeroError
			require.ErrorAs(t, err, &zerr)
			assert.Equal(t, "001", zerr.AdditionNumber)
			assert.Equal(t, tt.denominator, zerr.Denominator)
		})
	}
}

func TestAllocateAll(t *testing.T) {
	dec := fixtureDeclaration()

	require.NoError(t, allocation.AllocateAll(dec))
	assertDecimal(t, "45", dec.Additions[0].Line(1).FinalPriceUnit)
}

func TestAllocateAll_StopsOnFirstError(t *testing.T) {
	dec := fixtureDeclaration()
	dec.Additions = append(dec.Additions, model.Addition{
		Number: "002",
		Lines:  []model.Line{{Sequence: 1, Quantity: d("1"), PriceUnit: d("10")}},
	})

	err := allocation.AllocateAll(dec)
	require.Error(t, err)

	var zerr *model.AllocationDivideByZeroError
	require.ErrorAs(t, err, &zerr)
	assert.Equal(t, "002", zerr.AdditionNumber)
}
