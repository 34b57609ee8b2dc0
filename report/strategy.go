/*
strategy.go - Revenue and bonus calculation strategies

PURPOSE:
  The engine does not own the money math for a line of sale or for a bonus.
  Both are external collaborators called through a fixed capability contract:
  one method each, pure, no side effects assumed.

CONTRACTS:
  RevenueStrategy.LineRevenue(item, product)
    Called once per resolvable line item. The engine accumulates
    revenue += result and profit += result - cost.

  BonusStrategy.SellerBonus(rank, totalSellers, stats)
    Called once per seller after ranking. rank is 1-based, stats is the
    frozen accumulator for that seller.

REFERENCE DEFAULTS:
  DefaultRevenue: sale_price x quantity x (1 - discount/100), or zero when
  any of the three fields is absent.

  DefaultBonus: last place 0%, 1st place 15%, 2nd/3rd place 10%, everyone
  else 5% of profit, rounded half-away-from-zero to 2 decimals. A sole
  seller is simultaneously first and last; the last-place branch wins, so
  a single-seller dataset always yields a zero bonus. The branch order is
  a policy choice, not an accident. Do not reorder.

SEE ALSO:
  - join.go: Calls RevenueStrategy per line item
  - ranking.go: Calls BonusStrategy per seller
  - factory/strategy.go: JSON configuration to strategy values
*/
package report

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// STRATEGY CONTRACTS
// =============================================================================

// RevenueStrategy maps one line item plus its product reference data to the
// realized revenue for that line.
type RevenueStrategy interface {
	LineRevenue(item LineItem, product Product) decimal.Decimal
}

// BonusStrategy maps a seller's rank (1-based, by profit descending) and the
// total seller count to a monetary bonus.
type BonusStrategy interface {
	SellerBonus(rank, totalSellers int, stats *SellerStats) decimal.Decimal
}

// RevenueFunc adapts a plain function to RevenueStrategy.
type RevenueFunc func(item LineItem, product Product) decimal.Decimal

func (f RevenueFunc) LineRevenue(item LineItem, product Product) decimal.Decimal {
	return f(item, product)
}

// BonusFunc adapts a plain function to BonusStrategy.
type BonusFunc func(rank, totalSellers int, stats *SellerStats) decimal.Decimal

func (f BonusFunc) SellerBonus(rank, totalSellers int, stats *SellerStats) decimal.Decimal {
	return f(rank, totalSellers, stats)
}

// =============================================================================
// REFERENCE DEFAULTS
// =============================================================================

var (
	// DefaultRevenue is the reference revenue strategy.
	DefaultRevenue RevenueStrategy = RevenueFunc(discountedPriceRevenue)

	// DefaultBonus is the reference bonus strategy.
	DefaultBonus BonusStrategy = BonusFunc(rankTieredBonus)
)

var hundred = decimal.NewFromInt(100)

// discountedPriceRevenue computes sale_price x quantity x (1 - discount/100).
// A line missing any of the three fields yields zero revenue.
func discountedPriceRevenue(item LineItem, product Product) decimal.Decimal {
	if item.Quantity == nil || item.SalePrice == nil || item.Discount == nil {
		return decimal.Zero
	}
	factor := hundred.Sub(*item.Discount).Div(hundred)
	return item.SalePrice.Mul(decimal.NewFromInt(*item.Quantity)).Mul(factor)
}

// GrossPriceRevenue ignores the line discount: sale_price x quantity.
// Useful when discounts are already folded into the sale price upstream.
func GrossPriceRevenue() RevenueStrategy {
	return RevenueFunc(func(item LineItem, product Product) decimal.Decimal {
		if item.Quantity == nil || item.SalePrice == nil {
			return decimal.Zero
		}
		return item.SalePrice.Mul(decimal.NewFromInt(*item.Quantity))
	})
}

var (
	pctFirst  = decimal.NewFromFloat(0.15)
	pctPodium = decimal.NewFromFloat(0.10)
	pctOther  = decimal.NewFromFloat(0.05)
)

// rankTieredBonus pays a percentage of profit by rank. Branch priority:
// last place, then 1st, then 2nd/3rd, then everyone else. decimal.Round
// rounds half away from zero, which is the required rounding law.
func rankTieredBonus(rank, totalSellers int, stats *SellerStats) decimal.Decimal {
	var pct decimal.Decimal
	switch {
	case rank == totalSellers:
		return decimal.Zero
	case rank == 1:
		pct = pctFirst
	case rank == 2 || rank == 3:
		pct = pctPodium
	default:
		pct = pctOther
	}
	return stats.Profit.Mul(pct).Round(2)
}

// FlatRateBonus pays the same share of profit to every seller regardless
// of rank.
func FlatRateBonus(rate decimal.Decimal) BonusStrategy {
	return BonusFunc(func(rank, totalSellers int, stats *SellerStats) decimal.Decimal {
		return stats.Profit.Mul(rate).Round(2)
	})
}
