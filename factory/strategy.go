/*
Package factory provides JSON to Go strategy conversion.

PURPOSE:
  Converts JSON strategy configuration into report.Options. This lets API
  callers pick calculation strategies by name without code changes, while
  the engine keeps seeing only the RevenueStrategy/BonusStrategy contracts.

JSON SCHEMA:
  {
    "calculate_revenue": {"type": "discounted_price"},
    "calculate_bonus":   {"type": "rank_tiered"}
  }

REVENUE TYPES:
  discounted_price  sale_price x quantity x (1 - discount/100)  [default]
  gross_price       sale_price x quantity, discount ignored

BONUS TYPES:
  rank_tiered       last 0%, 1st 15%, 2nd/3rd 10%, others 5%    [default]
  flat_rate         rate x profit for every seller (requires "rate")

  "default" is accepted as an alias for the reference strategy on both.

USAGE:
  f := factory.NewStrategyFactory()
  opts, err := f.FromJSON(cfg)   // nil cfg -> report.DefaultOptions()

SEE ALSO:
  - report/strategy.go: The strategy contracts and implementations
  - api/handlers.go: Feeds request bodies through this factory
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/sales-engine/report"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// OptionsJSON is the JSON representation of analysis options. Absent
// strategies fall back to the reference defaults.
type OptionsJSON struct {
	Revenue *RevenueJSON `json:"calculate_revenue,omitempty"`
	Bonus   *BonusJSON   `json:"calculate_bonus,omitempty"`
}

// RevenueJSON selects a revenue strategy.
type RevenueJSON struct {
	Type string `json:"type"`
}

// BonusJSON selects a bonus strategy.
type BonusJSON struct {
	Type string   `json:"type"`
	Rate *float64 `json:"rate,omitempty"`
}

// =============================================================================
// STRATEGY FACTORY
// =============================================================================

// StrategyFactory converts JSON strategy configs to report.Options.
type StrategyFactory struct{}

// NewStrategyFactory creates a new strategy factory.
func NewStrategyFactory() *StrategyFactory {
	return &StrategyFactory{}
}

// ParseOptions parses a JSON string into report.Options.
func (f *StrategyFactory) ParseOptions(jsonStr string) (*report.Options, error) {
	var oj OptionsJSON
	if err := json.Unmarshal([]byte(jsonStr), &oj); err != nil {
		return nil, fmt.Errorf("failed to parse options JSON: %w", err)
	}
	return f.FromJSON(&oj)
}

// FromJSON converts OptionsJSON to report.Options. A nil config or an
// absent strategy selects the reference default.
func (f *StrategyFactory) FromJSON(oj *OptionsJSON) (*report.Options, error) {
	opts := report.DefaultOptions()
	if oj == nil {
		return opts, nil
	}

	if oj.Revenue != nil {
		revenue, err := revenueFromJSON(*oj.Revenue)
		if err != nil {
			return nil, err
		}
		opts.Revenue = revenue
	}

	if oj.Bonus != nil {
		bonus, err := bonusFromJSON(*oj.Bonus)
		if err != nil {
			return nil, err
		}
		opts.Bonus = bonus
	}

	return opts, nil
}

func revenueFromJSON(rj RevenueJSON) (report.RevenueStrategy, error) {
	switch rj.Type {
	case "", "default", "discounted_price":
		return report.DefaultRevenue, nil
	case "gross_price":
		return report.GrossPriceRevenue(), nil
	default:
		return nil, fmt.Errorf("unknown revenue strategy type %q", rj.Type)
	}
}

func bonusFromJSON(bj BonusJSON) (report.BonusStrategy, error) {
	switch bj.Type {
	case "", "default", "rank_tiered":
		return report.DefaultBonus, nil
	case "flat_rate":
		if bj.Rate == nil {
			return nil, fmt.Errorf("flat_rate bonus requires a rate")
		}
		return report.FlatRateBonus(decimal.NewFromFloat(*bj.Rate)), nil
	default:
		return nil, fmt.Errorf("unknown bonus strategy type %q", bj.Type)
	}
}
