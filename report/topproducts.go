/*
topproducts.go - Best-sellers selection per seller

PURPOSE:
  Reduces a seller's SKU->quantity map to the ten highest-quantity entries.
  Ties break by the order the SKUs were first sold (insertion order), which
  the stable sort preserves. A seller who sold nothing gets an empty list.
*/
package report

import (
	"sort"
)

// TopProductsLimit caps the best-sellers list per seller.
const TopProductsLimit = 10

// selectTopProducts flattens the quantity map in first-seen SKU order, sorts
// by quantity descending (stable), and keeps the first TopProductsLimit
// entries.
func selectTopProducts(st *SellerStats) []TopProduct {
	entries := make([]TopProduct, 0, len(st.skuOrder))
	for _, sku := range st.skuOrder {
		entries = append(entries, TopProduct{SKU: sku, Quantity: st.productsSold[sku]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Quantity > entries[j].Quantity
	})

	if len(entries) > TopProductsLimit {
		entries = entries[:TopProductsLimit]
	}
	return entries
}
