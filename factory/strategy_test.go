package factory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/sales-engine/report"
)

func TestFromJSON_NilSelectsDefaults(t *testing.T) {
	f := NewStrategyFactory()

	opts, err := f.FromJSON(nil)
	require.NoError(t, err)
	assert.NotNil(t, opts.Revenue)
	assert.NotNil(t, opts.Bonus)
	require.NoError(t, report.Validate(testDataset(), opts))
}

func TestFromJSON_DefaultAliases(t *testing.T) {
	f := NewStrategyFactory()

	for _, typ := range []string{"", "default", "discounted_price"} {
		opts, err := f.FromJSON(&OptionsJSON{Revenue: &RevenueJSON{Type: typ}})
		require.NoError(t, err, "revenue type %q", typ)
		assert.NotNil(t, opts.Revenue)
	}
	for _, typ := range []string{"", "default", "rank_tiered"} {
		opts, err := f.FromJSON(&OptionsJSON{Bonus: &BonusJSON{Type: typ}})
		require.NoError(t, err, "bonus type %q", typ)
		assert.NotNil(t, opts.Bonus)
	}
}

func TestFromJSON_GrossPrice(t *testing.T) {
	f := NewStrategyFactory()

	opts, err := f.FromJSON(&OptionsJSON{Revenue: &RevenueJSON{Type: "gross_price"}})
	require.NoError(t, err)

	qty := int64(2)
	price := decimal.NewFromInt(50)
	discount := decimal.NewFromInt(40)
	got := opts.Revenue.LineRevenue(
		report.LineItem{SKU: "X", Quantity: &qty, SalePrice: &price, Discount: &discount},
		report.Product{SKU: "X"},
	)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "gross price ignores the discount, got %v", got)
}

func TestFromJSON_FlatRate(t *testing.T) {
	f := NewStrategyFactory()
	rate := 0.02

	opts, err := f.FromJSON(&OptionsJSON{Bonus: &BonusJSON{Type: "flat_rate", Rate: &rate}})
	require.NoError(t, err)

	st := report.NewSellerStats(report.Seller{ID: "1"})
	st.Profit = decimal.NewFromInt(200)
	got := opts.Bonus.SellerBonus(5, 5, st)
	assert.True(t, got.Equal(decimal.NewFromInt(4)), "got %v", got)
}

func TestFromJSON_FlatRateRequiresRate(t *testing.T) {
	f := NewStrategyFactory()

	_, err := f.FromJSON(&OptionsJSON{Bonus: &BonusJSON{Type: "flat_rate"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate")
}

func TestFromJSON_UnknownTypes(t *testing.T) {
	f := NewStrategyFactory()

	_, err := f.FromJSON(&OptionsJSON{Revenue: &RevenueJSON{Type: "time_decay"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_decay")

	_, err = f.FromJSON(&OptionsJSON{Bonus: &BonusJSON{Type: "lottery"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lottery")
}

func TestParseOptions(t *testing.T) {
	f := NewStrategyFactory()

	opts, err := f.ParseOptions(`{"calculate_revenue":{"type":"gross_price"},"calculate_bonus":{"type":"flat_rate","rate":0.05}}`)
	require.NoError(t, err)
	assert.NotNil(t, opts.Revenue)
	assert.NotNil(t, opts.Bonus)

	_, err = f.ParseOptions(`{not json`)
	require.Error(t, err)
}

func testDataset() report.Dataset {
	qty := int64(1)
	price := decimal.NewFromInt(10)
	zero := decimal.Zero
	return report.Dataset{
		Sellers:  []report.Seller{{ID: "1", FirstName: "A", LastName: "B"}},
		Products: []report.Product{{SKU: "X", PurchasePrice: decimal.NewFromInt(5)}},
		PurchaseRecords: []report.PurchaseRecord{
			{
				SellerID:   "1",
				CustomerID: "c",
				Date:       "2024-01-01",
				Items: []report.LineItem{
					{SKU: "X", Quantity: &qty, SalePrice: &price, Discount: &zero},
				},
			},
		},
	}
}
