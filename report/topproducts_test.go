package report

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func soldStats(sales ...TopProduct) *SellerStats {
	st := NewSellerStats(Seller{ID: "1", FirstName: "A", LastName: "B"})
	for _, s := range sales {
		st.recordLine(s.SKU, s.Quantity, decimal.Zero, decimal.Zero)
	}
	return st
}

func TestSelectTopProducts_SortsByQuantityDescending(t *testing.T) {
	st := soldStats(
		TopProduct{SKU: "low", Quantity: 1},
		TopProduct{SKU: "high", Quantity: 9},
		TopProduct{SKU: "mid", Quantity: 5},
	)

	top := selectTopProducts(st)

	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].SKU != "high" || top[1].SKU != "mid" || top[2].SKU != "low" {
		t.Errorf("unexpected order: %+v", top)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Quantity > top[i-1].Quantity {
			t.Errorf("quantities not non-increasing at %d: %+v", i, top)
		}
	}
}

func TestSelectTopProducts_TiesKeepFirstSoldOrder(t *testing.T) {
	// GIVEN: Three SKUs with equal quantities, first sold in order a, b, c
	// THEN: The tie preserves that order

	st := soldStats(
		TopProduct{SKU: "a", Quantity: 4},
		TopProduct{SKU: "b", Quantity: 4},
		TopProduct{SKU: "c", Quantity: 4},
	)

	top := selectTopProducts(st)

	if top[0].SKU != "a" || top[1].SKU != "b" || top[2].SKU != "c" {
		t.Errorf("tie broke first-sold order: %+v", top)
	}
}

func TestSelectTopProducts_AccumulatesRepeatSales(t *testing.T) {
	st := soldStats(
		TopProduct{SKU: "a", Quantity: 2},
		TopProduct{SKU: "b", Quantity: 3},
		TopProduct{SKU: "a", Quantity: 2},
	)

	top := selectTopProducts(st)

	if top[0].SKU != "a" || top[0].Quantity != 4 {
		t.Errorf("repeat sales should accumulate: %+v", top)
	}
}

func TestSelectTopProducts_CapsAtLimit(t *testing.T) {
	var sales []TopProduct
	for i := 0; i < TopProductsLimit+5; i++ {
		sales = append(sales, TopProduct{SKU: fmt.Sprintf("sku-%d", i), Quantity: int64(i + 1)})
	}
	st := soldStats(sales...)

	top := selectTopProducts(st)

	if len(top) != TopProductsLimit {
		t.Fatalf("expected %d entries, got %d", TopProductsLimit, len(top))
	}
	if top[0].Quantity != int64(TopProductsLimit+5) {
		t.Errorf("the best seller should survive the cut: %+v", top[0])
	}
}

func TestSelectTopProducts_EmptySeller(t *testing.T) {
	top := selectTopProducts(soldStats())
	if len(top) != 0 {
		t.Errorf("seller with no sales should get an empty list, got %+v", top)
	}
}
