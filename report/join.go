/*
join.go - The single-pass join and accumulation engine

PURPOSE:
  The heart of the report: joins every purchase record against seller and
  product reference data and folds the result into per-seller accumulators.

ALGORITHM:
  1. Build seller-id and SKU lookup indexes once, O(S+P).
  2. Stream purchase records in input order. A record whose seller id does
     not resolve is dropped whole, with a warning; no partial accounting.
  3. For a resolved record, fold the record-level counters first (sales
     count, amount/discount sums, distinct customer, month bucket), then
     walk the line items in order. An item whose SKU does not resolve is
     skipped with a warning; the record-level counters already folded in
     step 3 stand.
  4. For a resolved item: quantity counters, cost = purchase_price x
     quantity, line revenue from the revenue strategy, profit += revenue -
     cost.

INVARIANTS:
  - One accumulator per known seller id, created before any record is
    processed, in seller-input order.
  - Warnings never alter control flow beyond skipping the unresolved unit.
  - Revenue and profit only grow while records are folded (assuming the
    revenue strategy is non-negative; not enforced).

SEE ALSO:
  - accumulator.go: The fold targets
  - ranking.go: Runs over the completed accumulators
*/
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// JoinEngine streams purchase records through the seller and product
// indexes, updating accumulators and reporting unresolved references to
// the warning sink.
type JoinEngine struct {
	Revenue  RevenueStrategy
	Warnings WarningSink
}

// Run builds one accumulator per seller, folds every purchase record in
// input order, and returns the accumulators in seller-input order.
func (e *JoinEngine) Run(data Dataset) []*SellerStats {
	stats := make([]*SellerStats, 0, len(data.Sellers))
	bySeller := make(map[string]*SellerStats, len(data.Sellers))
	for _, s := range data.Sellers {
		st := NewSellerStats(s)
		stats = append(stats, st)
		if _, dup := bySeller[s.ID]; !dup {
			bySeller[s.ID] = st
		}
	}

	bySKU := make(map[string]Product, len(data.Products))
	for _, p := range data.Products {
		if _, dup := bySKU[p.SKU]; !dup {
			bySKU[p.SKU] = p
		}
	}

	for i, rec := range data.PurchaseRecords {
		st, ok := bySeller[rec.SellerID]
		if !ok {
			e.Warnings.UnknownSeller(i, rec.SellerID)
			continue
		}

		st.recordSale(rec, monthKey(rec.Date))

		for _, item := range rec.Items {
			product, ok := bySKU[item.SKU]
			if !ok {
				e.Warnings.UnknownProduct(i, item.SKU)
				continue
			}

			qty := item.qtyOrZero()
			cost := product.PurchasePrice.Mul(decimal.NewFromInt(qty))
			st.recordLine(item.SKU, qty, e.Revenue.LineRevenue(item, product), cost)
		}
	}

	return stats
}

// monthKeyLayouts are tried in order when bucketing a record date.
var monthKeyLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
}

// monthKey derives the YYYY-MM bucket for a record date. Dates that match
// none of the known layouts bucket under the raw string, so no transaction
// is ever silently dropped from the monthly counts.
func monthKey(date string) string {
	for _, layout := range monthKeyLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01")
		}
	}
	return date
}
