/*
accumulator.go - Per-seller running totals

PURPOSE:
  SellerStats is the mutable aggregate built during the join pass, one per
  known seller, keyed by seller id. It is created from seller reference data
  before any transaction is processed, mutated only while transactions are
  folded in, then frozen for ranking, bonus, and formatting.

LIFECYCLE:
  NewSellerStats -> (join pass mutations) -> Rank/Bonus/TopProducts assigned
  exactly once -> read-only.

INTERNAL STATE:
  The distinct-customer set, the SKU quantity map, and the month buckets are
  unexported: the outside world only sees their cardinality or the derived
  top-products list. Monthly sales buckets are accumulated but not surfaced
  in the report; they are kept for extension and for tests.
*/
package report

import (
	"github.com/shopspring/decimal"
)

// SellerStats is the per-seller accumulator. Identity fields are copied from
// the Seller at creation; totals grow monotonically during the join pass.
type SellerStats struct {
	SellerID  string
	FirstName string
	LastName  string
	StartDate string
	Position  string

	// Transaction-level counters. TotalAmount and TotalDiscount sum the
	// record-level figures and take no part in revenue/profit math.
	TotalSales    int
	TotalAmount   decimal.Decimal
	TotalDiscount decimal.Decimal

	// Line-item accumulation. Profit is revenue minus cost, folded per line.
	Revenue        decimal.Decimal
	Profit         decimal.Decimal
	TotalItemsSold int64

	customers    map[string]struct{}
	productsSold map[string]int64
	skuOrder     []string
	salesByMonth map[string]int

	// Assigned exactly once, after all transactions are folded.
	Rank        int
	Bonus       decimal.Decimal
	TopProducts []TopProduct
}

// NewSellerStats creates the accumulator for one seller, all totals zero.
func NewSellerStats(s Seller) *SellerStats {
	return &SellerStats{
		SellerID:      s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		StartDate:     s.StartDate,
		Position:      s.Position,
		TotalAmount:   decimal.Zero,
		TotalDiscount: decimal.Zero,
		Revenue:       decimal.Zero,
		Profit:        decimal.Zero,
		customers:     make(map[string]struct{}),
		productsSold:  make(map[string]int64),
		salesByMonth:  make(map[string]int),
	}
}

// recordSale folds the record-level counters of one attributed transaction.
func (st *SellerStats) recordSale(rec PurchaseRecord, month string) {
	st.TotalSales++
	st.TotalAmount = st.TotalAmount.Add(rec.TotalAmount)
	st.TotalDiscount = st.TotalDiscount.Add(rec.TotalDiscount)
	st.customers[rec.CustomerID] = struct{}{}
	st.salesByMonth[month]++
}

// recordLine folds one resolved line item: quantity counters plus the
// revenue/profit contribution already computed by the caller.
func (st *SellerStats) recordLine(sku string, qty int64, lineRevenue, lineCost decimal.Decimal) {
	if _, seen := st.productsSold[sku]; !seen {
		st.skuOrder = append(st.skuOrder, sku)
	}
	st.productsSold[sku] += qty
	st.TotalItemsSold += qty
	st.Revenue = st.Revenue.Add(lineRevenue)
	st.Profit = st.Profit.Add(lineRevenue.Sub(lineCost))
}

// CustomerCount reports how many distinct customers bought from this seller.
// Membership is deliberately not exposed.
func (st *SellerStats) CustomerCount() int {
	return len(st.customers)
}

// QuantitySold reports the cumulative quantity of one SKU sold by this seller.
func (st *SellerStats) QuantitySold(sku string) int64 {
	return st.productsSold[sku]
}

// DistinctProducts reports how many different SKUs this seller has sold.
func (st *SellerStats) DistinctProducts() int {
	return len(st.productsSold)
}

// SalesInMonth reports the transaction count folded into one YYYY-MM bucket.
func (st *SellerStats) SalesInMonth(month string) int {
	return st.salesByMonth[month]
}
