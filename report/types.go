/*
Package report provides the seller sales performance engine.

PURPOSE:
  This package contains the types and algorithms that turn three raw record
  collections (sellers, products, purchase transactions) into a per-seller
  performance report: revenue, profit, a ranking-based bonus, and the ten
  best-selling products of each seller.

KEY CONCEPTS IN THIS FILE (types.go):
  - Seller/Product/PurchaseRecord: Immutable input reference data
  - LineItem: One product/quantity entry inside a purchase record
  - Dataset: The three input collections handed to Analyze
  - TopProduct/SellerReport: The public output shape

DESIGN PRINCIPLES:
  1. Purity: Analyze is a pure function over its inputs plus two strategies
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Determinism: Stable sorts everywhere; identical inputs give identical output
  4. Locality: All mutable state lives in per-call accumulators, never globals

USAGE:
  reports, err := report.Analyze(data, report.DefaultOptions())

SEE ALSO:
  - accumulator.go: Per-seller running totals built during the join pass
  - strategy.go: Revenue and bonus strategy contracts and reference defaults
  - analyze.go: The pipeline entry point
*/
package report

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT COLLECTIONS
// =============================================================================

// Seller is immutable reference data describing one salesperson.
type Seller struct {
	ID        string
	FirstName string
	LastName  string
	StartDate string
	Position  string
}

// Product is immutable reference data keyed by SKU. PurchasePrice is the
// cost basis used for profit; the descriptive fields are carried through
// untouched by the engine.
type Product struct {
	SKU           string
	Name          string
	Category      string
	PurchasePrice decimal.Decimal
}

// LineItem is one product/quantity entry inside a purchase record.
// Quantity, SalePrice, and Discount are pointers because source records may
// omit them; the reference revenue strategy yields zero for such lines.
// Discount is a percentage in [0, 100].
type LineItem struct {
	SKU       string
	Quantity  *int64
	SalePrice *decimal.Decimal
	Discount  *decimal.Decimal
}

// PurchaseRecord is one transaction/receipt attributed to a single seller.
// TotalAmount and TotalDiscount are transaction-level figures kept for
// information only; revenue and profit come from the line items.
type PurchaseRecord struct {
	SellerID      string
	CustomerID    string
	Date          string
	TotalAmount   decimal.Decimal
	TotalDiscount decimal.Decimal
	Items         []LineItem
}

// Dataset bundles the three input collections.
//
// A nil slice means the collection was never provided (rejected as
// ErrInvalidStructure); an empty non-nil slice means it was provided but
// holds no records (rejected as ErrEmptyInput).
type Dataset struct {
	Sellers         []Seller
	Products        []Product
	PurchaseRecords []PurchaseRecord
}

// qtyOrZero treats an absent quantity as zero so item counters and cost
// accumulation stay defined for incomplete lines.
func (it LineItem) qtyOrZero() int64 {
	if it.Quantity == nil {
		return 0
	}
	return *it.Quantity
}

// =============================================================================
// OUTPUT SHAPE
// =============================================================================

// TopProduct is one entry of a seller's best-sellers list.
type TopProduct struct {
	SKU      string
	Quantity int64
}

// SellerReport is the public, frozen result for one seller. Monetary fields
// are rounded to two decimal places. Reports are ordered by profit descending.
type SellerReport struct {
	SellerID    string
	Name        string
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
	SalesCount  int
	TopProducts []TopProduct
	Bonus       decimal.Decimal
}
