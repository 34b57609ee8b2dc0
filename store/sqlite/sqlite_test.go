package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/sales-engine/report"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	d := mustDec(t, s)
	return &d
}

func int64Ptr(n int64) *int64 { return &n }

func TestStore_LoadDataset_NilUntilStaged(t *testing.T) {
	st := newTestStore(t)

	data, err := st.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data.Sellers)
	assert.Nil(t, data.Products)
	assert.Nil(t, data.PurchaseRecords)
}

func TestStore_SellersRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sellers := []report.Seller{
		{ID: "s2", FirstName: "Zoe", LastName: "Last", StartDate: "2020-03-01", Position: "senior"},
		{ID: "s1", FirstName: "Ana", LastName: "First"},
	}
	require.NoError(t, st.ReplaceSellers(ctx, sellers))

	data, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, sellers, data.Sellers, "order and fields must survive the round trip")
}

func TestStore_ProductsKeepDecimalPrecision(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	products := []report.Product{
		{SKU: "X", Name: "Widget", Category: "tools", PurchasePrice: mustDec(t, "10.99")},
		{SKU: "Y", PurchasePrice: mustDec(t, "0.001")},
	}
	require.NoError(t, st.ReplaceProducts(ctx, products))

	data, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data.Products, 2)
	assert.True(t, data.Products[0].PurchasePrice.Equal(mustDec(t, "10.99")))
	assert.True(t, data.Products[1].PurchasePrice.Equal(mustDec(t, "0.001")))
}

func TestStore_PurchaseRecordsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	records := []report.PurchaseRecord{
		{
			SellerID:      "s1",
			CustomerID:    "c1",
			Date:          "2024-01-05",
			TotalAmount:   mustDec(t, "130.50"),
			TotalDiscount: mustDec(t, "5"),
			Items: []report.LineItem{
				{SKU: "X", Quantity: int64Ptr(2), SalePrice: decPtr(t, "50"), Discount: decPtr(t, "0")},
				// Absent fields must come back absent, not zero.
				{SKU: "Y", Quantity: nil, SalePrice: nil, Discount: nil},
			},
		},
		{
			SellerID:      "s2",
			CustomerID:    "c2",
			Date:          "2024-02-01",
			TotalAmount:   mustDec(t, "10"),
			TotalDiscount: mustDec(t, "0"),
			Items:         []report.LineItem{},
		},
	}
	require.NoError(t, st.ReplacePurchaseRecords(ctx, records))

	data, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data.PurchaseRecords, 2)

	got := data.PurchaseRecords[0]
	assert.Equal(t, "s1", got.SellerID)
	assert.True(t, got.TotalAmount.Equal(mustDec(t, "130.50")))
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Quantity)
	assert.Equal(t, int64(2), *got.Items[0].Quantity)
	assert.True(t, got.Items[0].SalePrice.Equal(mustDec(t, "50")))
	assert.Nil(t, got.Items[1].Quantity)
	assert.Nil(t, got.Items[1].SalePrice)
	assert.Nil(t, got.Items[1].Discount)

	assert.Equal(t, "s2", data.PurchaseRecords[1].SellerID)
}

func TestStore_ReplaceSwapsWholeCollection(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ReplaceSellers(ctx, []report.Seller{{ID: "old-1"}, {ID: "old-2"}}))
	require.NoError(t, st.ReplaceSellers(ctx, []report.Seller{{ID: "new-1"}}))

	data, err := st.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data.Sellers, 1)
	assert.Equal(t, "new-1", data.Sellers[0].ID)
}

func TestStore_Counts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ReplaceSellers(ctx, []report.Seller{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, st.ReplaceProducts(ctx, []report.Product{{SKU: "X", PurchasePrice: decimal.Zero}}))

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.DatasetCounts{Sellers: 2, Products: 1, PurchaseRecords: 0}, counts)
}

func TestStore_ReportRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	latest, err := st.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty store should have no latest run")

	run := report.ReportRun{
		ID:        "run-1",
		CreatedAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Reports: []report.SellerReport{
			{
				SellerID:    "s1",
				Name:        "Ana First",
				Revenue:     mustDec(t, "100.00"),
				Profit:      mustDec(t, "80.00"),
				SalesCount:  1,
				TopProducts: []report.TopProduct{{SKU: "X", Quantity: 2}},
				Bonus:       mustDec(t, "0"),
			},
		},
	}
	require.NoError(t, st.SaveRun(ctx, run))
	require.NoError(t, st.SaveRun(ctx, report.ReportRun{
		ID:        "run-2",
		CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Reports:   []report.SellerReport{},
	}))

	latest, err = st.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-2", latest.ID)
	assert.True(t, latest.CreatedAt.Equal(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)))

	// Re-check the report codec with a populated run on top.
	run.ID = "run-3"
	require.NoError(t, st.SaveRun(ctx, run))
	latest, err = st.LatestRun(ctx)
	require.NoError(t, err)
	require.Len(t, latest.Reports, 1)
	got := latest.Reports[0]
	assert.Equal(t, "Ana First", got.Name)
	assert.True(t, got.Revenue.Equal(mustDec(t, "100")))
	assert.True(t, got.Profit.Equal(mustDec(t, "80")))
	assert.Equal(t, 1, got.SalesCount)
	assert.Equal(t, []report.TopProduct{{SKU: "X", Quantity: 2}}, got.TopProducts)
	assert.True(t, got.Bonus.IsZero())
}
