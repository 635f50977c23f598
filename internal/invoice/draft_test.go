package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmee/trade-import/internal/invoice"
	"github.com/kmee/trade-import/internal/model"
)

func confirmedDeclaration() *model.Declaration {
	return &model.Declaration{
		DocumentNumber:   "2300000001",
		DocumentDate:     time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC),
		ExportingPartner: "SHENZHEN TRADING CO",
		State:            model.StateOpen,
		Additions: []model.Addition{
			{Number: "001", AmountBRL: decimal.RequireFromString("5200")},
			{Number: "002", AmountBRL: decimal.RequireFromString("1302.60")},
		},
	}
}

func TestBuildDraft(t *testing.T) {
	dec := confirmedDeclaration()

	draft, err := invoice.BuildDraft(dec)
	require.NoError(t, err)

	assert.Equal(t, invoice.TypeVendorInvoice, draft.Type)
	assert.Equal(t, "SHENZHEN TRADING CO", draft.Partner)
	assert.Equal(t, "2300000001", draft.Origin)
	assert.Equal(t, dec.DocumentDate, draft.Date)

	require.Len(t, draft.Lines, 2)
	assert.Equal(t, "Import Declaration 2300000001 - addition 001", draft.Lines[0].Name)
	assert.True(t, draft.Lines[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, draft.Lines[0].PriceUnit.Equal(decimal.RequireFromString("5200")))
	assert.True(t, draft.Lines[1].PriceUnit.Equal(decimal.RequireFromString("1302.60")))
}

func TestBuildDraft_Total(t *testing.T) {
	draft, err := invoice.BuildDraft(confirmedDeclaration())
	require.NoError(t, err)

	assert.True(t, draft.Total().Equal(decimal.RequireFromString("6502.60")),
		"expected 6502.60, got %s", draft.Total().String())
}

func TestBuildDraft_RequiresOpenState(t *testing.T) {
	for _, state := range []model.State{model.StateDraft, model.StateLocked, model.StateCancelled} {
		t.Run(string(state), func(t *testing.T) {
			dec := confirmedDeclaration()
			dec.State = state

			_, err := invoice.BuildDraft(dec)
			require.Error(t, err)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "state", verr.Field)
		})
	}
}
