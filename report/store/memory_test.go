package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/sales-engine/report"
)

func TestMemory_LoadDataset_NilUntilStaged(t *testing.T) {
	m := NewMemory()

	data, err := m.LoadDataset(context.Background())
	require.NoError(t, err)

	// Unstaged collections come back nil so the validation gate rejects them.
	assert.Nil(t, data.Sellers)
	assert.Nil(t, data.Products)
	assert.Nil(t, data.PurchaseRecords)
}

func TestMemory_ReplacePreservesOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	sellers := []report.Seller{
		{ID: "z", FirstName: "Zoe", LastName: "Last"},
		{ID: "a", FirstName: "Ana", LastName: "First"},
	}
	require.NoError(t, m.ReplaceSellers(ctx, sellers))

	data, err := m.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data.Sellers, 2)
	assert.Equal(t, "z", data.Sellers[0].ID)
	assert.Equal(t, "a", data.Sellers[1].ID)
}

func TestMemory_ReplaceSwapsWholeCollection(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.ReplaceProducts(ctx, []report.Product{
		{SKU: "old-1"}, {SKU: "old-2"}, {SKU: "old-3"},
	}))
	require.NoError(t, m.ReplaceProducts(ctx, []report.Product{
		{SKU: "new-1"},
	}))

	data, err := m.LoadDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data.Products, 1)
	assert.Equal(t, "new-1", data.Products[0].SKU)
}

func TestMemory_LoadDataset_CopiesAreIndependent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.ReplaceSellers(ctx, []report.Seller{{ID: "1", FirstName: "A"}}))

	data, err := m.LoadDataset(ctx)
	require.NoError(t, err)
	data.Sellers[0].FirstName = "mutated"

	again, err := m.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Sellers[0].FirstName)
}

func TestMemory_Counts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.ReplaceSellers(ctx, []report.Seller{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, m.ReplaceProducts(ctx, []report.Product{{SKU: "X"}}))

	counts, err := m.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.DatasetCounts{Sellers: 2, Products: 1, PurchaseRecords: 0}, counts)
}

func TestMemory_Runs_LatestWins(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	latest, err := m.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty store should have no latest run")

	first := report.ReportRun{
		ID:        "run-1",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Reports: []report.SellerReport{
			{SellerID: "1", Name: "A B", Revenue: decimal.NewFromInt(100)},
		},
	}
	second := report.ReportRun{ID: "run-2", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, m.SaveRun(ctx, first))
	require.NoError(t, m.SaveRun(ctx, second))

	latest, err = m.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-2", latest.ID)
}
