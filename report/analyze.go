/*
analyze.go - Pipeline entry point

PURPOSE:
  Analyze is the public face of the engine: validate, join, rank, pick top
  products, format. Data flows strictly left to right; no stage re-enters
  an earlier one.

PURITY & CONCURRENCY:
  Single-threaded, synchronous, no I/O. All mutable state is allocated
  fresh per call, so concurrent invocations with disjoint inputs do not
  interfere. Identical inputs and strategies yield bit-identical output.
*/
package report

import (
	"os"

	"github.com/rs/zerolog"
)

// Analyze computes the per-seller performance report for a dataset.
//
// The returned slice has one report per input seller, ordered by profit
// descending. Unresolved seller/product references are reported through
// opts.Warnings (a zerolog sink on stderr when unset) and never fail the
// computation. Validation failures return before any aggregation happens.
func Analyze(data Dataset, opts *Options) ([]SellerReport, error) {
	if err := Validate(data, opts); err != nil {
		return nil, err
	}

	sink := opts.Warnings
	if sink == nil {
		sink = NewLogSink(zerolog.New(os.Stderr).With().Timestamp().Logger())
	}

	engine := &JoinEngine{Revenue: opts.Revenue, Warnings: sink}
	stats := engine.Run(data)

	RankAndReward(stats, opts.Bonus)

	for _, st := range stats {
		st.TopProducts = selectTopProducts(st)
	}

	reports := make([]SellerReport, len(stats))
	for i, st := range stats {
		reports[i] = formatReport(st)
	}
	return reports, nil
}
