package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmee/trade-import/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransportModeFromCode(t *testing.T) {
	assert.Equal(t, model.TransportMaritime, model.TransportModeFromCode("01"))
	assert.Equal(t, model.TransportAerial, model.TransportModeFromCode("04"))
	assert.Equal(t, model.TransportTowing, model.TransportModeFromCode("13"))
	assert.Equal(t, model.TransportUnknown, model.TransportModeFromCode("99"))
}

func TestIntermediationFromCode(t *testing.T) {
	assert.Equal(t, model.IntermediationOwnAccount, model.IntermediationFromCode("1"))
	assert.Equal(t, model.IntermediationAccountAndOrder, model.IntermediationFromCode("2"))
	assert.Equal(t, model.IntermediationOnCommission, model.IntermediationFromCode("3"))
	assert.Equal(t, model.IntermediationUnknown, model.IntermediationFromCode(""))
}

func TestIntermediation_RequiresThirdParty(t *testing.T) {
	assert.False(t, model.IntermediationOwnAccount.RequiresThirdParty())
	assert.True(t, model.IntermediationAccountAndOrder.RequiresThirdParty())
	assert.True(t, model.IntermediationOnCommission.RequiresThirdParty())
}

func TestDeclaration_RecalculateTotals(t *testing.T) {
	dec := model.Declaration{
		Additions: []model.Addition{
			{AmountCurrency: d("1000"), AmountBRL: d("5200")},
			{AmountCurrency: d("250.50"), AmountBRL: d("1302.60")},
		},
	}

	dec.RecalculateTotals()

	assert.True(t, dec.AmountCurrency.Equal(d("1250.50")),
		"expected 1250.50, got %s", dec.AmountCurrency.String())
	assert.True(t, dec.AmountReais.Equal(d("6502.60")),
		"expected 6502.60, got %s", dec.AmountReais.String())
}

func TestDeclaration_Validate_ThirdPartyRequired(t *testing.T) {
	dec := model.Declaration{
		Intermediation: model.IntermediationAccountAndOrder,
	}

	err := dec.Validate()
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "third_party_partner", verr.Field)

	dec.ThirdPartyPartner = "ACQUIRER LTDA"
	require.NoError(t, dec.Validate())
}

func TestDeclaration_Validate_MaritimeAFRMM(t *testing.T) {
	dec := model.Declaration{
		TransportMode: model.TransportMaritime,
	}

	err := dec.Validate()
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "afrmm_value", verr.Field)

	dec.AFRMM = d("586.43")
	require.NoError(t, dec.Validate())
}

func TestDeclaration_Validate_NonMaritimeNoAFRMM(t *testing.T) {
	dec := model.Declaration{
		TransportMode: model.TransportAerial,
	}
	require.NoError(t, dec.Validate())
}

func TestDeclaration_Lifecycle(t *testing.T) {
	dec := model.Declaration{State: model.StateDraft}

	require.NoError(t, dec.Confirm())
	assert.Equal(t, model.StateOpen, dec.State)

	// Only drafts can be confirmed
	require.Error(t, dec.Confirm())

	require.NoError(t, dec.BackToDraft())
	assert.Equal(t, model.StateDraft, dec.State)

	require.NoError(t, dec.Cancel())
	assert.Equal(t, model.StateCancelled, dec.State)
}

func TestDeclaration_Confirm_RunsValidation(t *testing.T) {
	dec := model.Declaration{
		State:         model.StateDraft,
		TransportMode: model.TransportMaritime,
	}

	err := dec.Confirm()
	require.Error(t, err)
	assert.Equal(t, model.StateDraft, dec.State)
}

func TestDeclaration_Locked(t *testing.T) {
	dec := model.Declaration{State: model.StateLocked}

	require.Error(t, dec.BackToDraft())
	require.Error(t, dec.Cancel())
	assert.Equal(t, model.StateLocked, dec.State)
}

func TestOtherCost_AllocableAmount(t *testing.T) {
	rated := model.OtherCost{Name: "Storage", Amount: d("120.50"), Allocable: true}
	unrated := model.OtherCost{Name: "Brokerage", Amount: d("300"), Allocable: false}

	assert.True(t, rated.AllocableAmount().Equal(d("120.50")))
	assert.True(t, unrated.AllocableAmount().IsZero())
}

func TestDeclaration_OtherCostsAllocableTotal(t *testing.T) {
	dec := model.Declaration{
		OtherCosts: []model.OtherCost{
			{Name: "Storage", Amount: d("120.50"), Allocable: true},
			{Name: "Brokerage", Amount: d("300"), Allocable: false},
			{Name: "Handling", Amount: d("79.50"), Allocable: true},
		},
	}

	// The flag gates the allocable total; this path stays independent of
	// AmountOtherCostsBRL.
	assert.True(t, dec.OtherCostsAllocableTotal().Equal(d("200")))
}

func TestValidationError_Message(t *testing.T) {
	err := model.NewValidationError("afrmm_value", "required_for_maritime", "must inform the AFRMM value")
	require.Contains(t, err.Error(), "afrmm_value")
	require.Contains(t, err.Error(), "required_for_maritime")
}
