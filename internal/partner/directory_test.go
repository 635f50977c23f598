package partner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmee/trade-import/internal/partner"
)

func TestMemoryDirectory_FindOrCreateManufacturer(t *testing.T) {
	dir := partner.NewMemoryDirectory()

	ref, err := dir.FindOrCreateManufacturer("ACME INDUSTRIES", partner.Address{City: "SHENZHEN"})
	require.NoError(t, err)
	assert.Equal(t, "partner-0001", ref)

	// Same name resolves to the same reference
	again, err := dir.FindOrCreateManufacturer("ACME INDUSTRIES", partner.Address{})
	require.NoError(t, err)
	assert.Equal(t, ref, again)
	assert.Equal(t, 1, dir.Len())
}

func TestMemoryDirectory_CaseInsensitive(t *testing.T) {
	dir := partner.NewMemoryDirectory()

	first, err := dir.FindOrCreateManufacturer("Acme Industries", partner.Address{})
	require.NoError(t, err)

	second, err := dir.FindOrCreateManufacturer("  ACME INDUSTRIES  ", partner.Address{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, dir.Len())
}

func TestMemoryDirectory_DistinctNames(t *testing.T) {
	dir := partner.NewMemoryDirectory()

	a, err := dir.FindOrCreateManufacturer("ACME", partner.Address{})
	require.NoError(t, err)
	b, err := dir.FindOrCreateManufacturer("GLOBEX", partner.Address{})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, dir.Len())
}

func TestMemoryDirectory_EmptyName(t *testing.T) {
	dir := partner.NewMemoryDirectory()

	_, err := dir.FindOrCreateManufacturer("   ", partner.Address{})
	require.Error(t, err)
	assert.Equal(t, 0, dir.Len())
}
