package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmee/trade-import/internal/money"
)

func TestDecodeScaled(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		scale    money.Scale
		expected string
	}{
		{"cents", "123456", money.ScaleCents, "1234.56"},
		{"cents with leading zeros", "000000520000", money.ScaleCents, "5200"},
		{"cents zero", "000000000000", money.ScaleCents, "0"},
		{"quantity", "000000001000000", money.ScaleQuantity, "10"},
		{"quantity fractional", "000000000012345", money.ScaleQuantity, "0.12345"},
		{"unit price", "000000000500000000", money.ScaleUnitPrice, "50"},
		{"unit price fractional", "123456789", money.ScaleUnitPrice, "12.3456789"},
		{"empty decodes to zero", "", money.ScaleCents, "0"},
		{"whitespace decodes to zero", "   ", money.ScaleCents, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.DecodeScaled(tt.raw, tt.scale)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestDecodeScaled_Exact(t *testing.T) {
	// No float drift: the decoded value must round-trip its digits
	got, err := money.DecodeScaled("123456", money.ScaleCents)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", got.String())
}

func TestDecodeScaled_Invalid(t *testing.T) {
	_, err := money.DecodeScaled("12x34", money.ScaleCents)
	require.Error(t, err)

	_, err = money.DecodeScaled("12.34", money.ScaleCents)
	require.Error(t, err)
}

func TestImpliedRate(t *testing.T) {
	brl := decimal.RequireFromString("5200")
	foreign := decimal.RequireFromString("1000")

	rate := money.ImpliedRate(brl, foreign)
	assert.True(t, rate.Equal(decimal.RequireFromString("5.2")),
		"expected 5.2, got %s", rate.String())
}

func TestImpliedRate_ZeroSides(t *testing.T) {
	x := decimal.RequireFromString("100")

	// Zero on either side yields an explicit zero, never an error
	assert.True(t, money.ImpliedRate(decimal.Zero, x).IsZero())
	assert.True(t, money.ImpliedRate(x, decimal.Zero).IsZero())
	assert.True(t, money.ImpliedRate(decimal.Zero, decimal.Zero).IsZero())
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.234,56", "1234.56"},
		{"150,00", "150"},
		{"R$ 586,43", "586.43"},
		{"R$1.000.000,99", "1000000.99"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := money.ParseBRL(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestParseBRL_Invalid(t *testing.T) {
	_, err := money.ParseBRL("not a number")
	require.Error(t, err)
}

func TestSum(t *testing.T) {
	values := []decimal.Decimal{
		decimal.RequireFromString("1.5"),
		decimal.RequireFromString("2.5"),
		decimal.RequireFromString("-1"),
	}
	assert.True(t, money.Sum(values).Equal(decimal.RequireFromString("3")))
	assert.True(t, money.Sum(nil).IsZero())
}
