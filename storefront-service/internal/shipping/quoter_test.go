package shipping

import (
	"testing"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultQuoter(t *testing.T) *Quoter {
	t.Helper()
	q, err := NewQuoter(DefaultTable())
	require.NoError(t, err)
	return q
}

func TestQuote_Formosa(t *testing.T) {
	q := newDefaultQuoter(t)

	options := q.Quote("3600")

	require.Len(t, options, 3)
	assert.Equal(t, domain.ShippingLocalPickup, options[0].ID)
	assert.True(t, options[0].Price.IsZero())
	assert.Equal(t, "Disponible hoy", options[0].Days)
	assert.Equal(t, "Av. 25 de Mayo 737 – Formosa", options[0].Description)

	assert.Equal(t, domain.ShippingBranchPickup, options[1].ID)
	assert.Equal(t, "3500", options[1].Price.String())
	assert.Equal(t, "3 días hábiles", options[1].Days)

	assert.Equal(t, domain.ShippingHomeDelivery, options[2].ID)
	assert.Equal(t, "5075", options[2].Price.String())
	assert.Equal(t, "3 días hábiles", options[2].Days)
}

func TestQuote_PricesAndTiersPerProvince(t *testing.T) {
	q := newDefaultQuoter(t)

	tests := []struct {
		postalCode string
		branch     string
		home       string
		eta        string
	}{
		{"3500", "4700", "6815", "3 días hábiles"},   // Chaco, 200km
		{"3400", "5600", "8120", "3 días hábiles"},   // Corrientes, 350km
		{"3300", "7100", "10295", "4 días hábiles"},  // Misiones, 600km
		{"3100", "8900", "12905", "5 días hábiles"},  // Santa Fe, 900km
		{"3000", "9800", "14210", "5 días hábiles"},  // Entre Ríos, 1050km
		{"5000", "10100", "14645", "5 días hábiles"}, // Córdoba, 1100km
		{"1001", "10700", "15515", "6 días hábiles"}, // Buenos Aires, 1200km
		{"1100", "10700", "15515", "6 días hábiles"},
		{"1200", "10700", "15515", "6 días hábiles"},
		{"5400", "12500", "18125", "6 días hábiles"}, // La Pampa, 1500km
	}

	for _, tt := range tests {
		t.Run(tt.postalCode, func(t *testing.T) {
			options := q.Quote(tt.postalCode)
			require.Len(t, options, 3)
			assert.Equal(t, tt.branch, options[1].Price.String())
			assert.Equal(t, tt.home, options[2].Price.String())
			assert.Equal(t, tt.eta, options[1].Days)
			assert.Equal(t, tt.eta, options[2].Days)
		})
	}
}

func TestQuote_UnknownPostalCode(t *testing.T) {
	q := newDefaultQuoter(t)

	for _, code := range []string{"", "   ", "9000", "4400", "X3600", "3"} {
		assert.Empty(t, q.Quote(code), "postal code %q", code)
	}
}

func TestQuote_TrimsWhitespace(t *testing.T) {
	q := newDefaultQuoter(t)

	assert.Len(t, q.Quote("  3600 "), 3)
}

func TestQuote_HomeCostsMoreThanBranch(t *testing.T) {
	q := newDefaultQuoter(t)

	for _, r := range DefaultTable().Regions {
		if r.KM == 0 {
			continue
		}
		options := q.Quote(r.Prefixes[0] + "00")
		require.Len(t, options, 3, r.Province)
		branch, home := options[1].Price, options[2].Price
		assert.True(t, branch.IsPositive(), r.Province)
		assert.True(t, home.GreaterThan(branch), r.Province)
	}
}

func TestQuote_RoundsPrices(t *testing.T) {
	table := DefaultTable()
	table.PerKMRate = decimal.RequireFromString("0.25")
	table.Regions = []Region{{Province: "Test", Prefixes: []string{"99"}, KM: 2}}
	q, err := NewQuoter(table)
	require.NoError(t, err)

	options := q.Quote("9900")

	// 3500 + 2*0.25 = 3500.5 -> 3501; 3501*1.45 = 5076.45 -> 5076
	require.Len(t, options, 3)
	assert.Equal(t, "3501", options[1].Price.String())
	assert.Equal(t, "5076", options[2].Price.String())
}

func TestProvince(t *testing.T) {
	q := newDefaultQuoter(t)

	p, ok := q.Province("3600")
	assert.True(t, ok)
	assert.Equal(t, "Formosa", p)

	p, ok = q.Province("1001")
	assert.True(t, ok)
	assert.Equal(t, "BuenosAires", p)

	_, ok = q.Province("8000")
	assert.False(t, ok)
}

func TestProvince_FirstMatchWins(t *testing.T) {
	table := DefaultTable()
	table.Regions = []Region{
		{Province: "First", Prefixes: []string{"3"}, KM: 0},
		{Province: "Second", Prefixes: []string{"36"}, KM: 100},
	}
	q, err := NewQuoter(table)
	require.NoError(t, err)

	p, ok := q.Province("3600")
	assert.True(t, ok)
	assert.Equal(t, "First", p)
}
