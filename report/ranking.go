/*
ranking.go - Profit ranking and bonus assignment

PURPOSE:
  Orders the completed accumulators by profit descending, assigns each
  seller a 1-based rank, and asks the bonus strategy for a bonus per seller.

STABILITY:
  The sort MUST be stable: sellers with equal profit keep their prior
  relative order, which after the join pass is seller-input order. Rank and
  bonus are assigned exactly once, after all transactions are folded.
*/
package report

import (
	"sort"
)

// RankAndReward sorts stats in place by profit descending (stable), assigns
// 1-based ranks, and stores the bonus produced by the strategy on each
// accumulator.
func RankAndReward(stats []*SellerStats, bonus BonusStrategy) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Profit.GreaterThan(stats[j].Profit)
	})

	total := len(stats)
	for i, st := range stats {
		st.Rank = i + 1
		st.Bonus = bonus.SellerBonus(st.Rank, total, st)
	}
}
