/*
store.go - Persistence interfaces for datasets and report runs

PURPOSE:
  The engine itself does no I/O; Analyze is pure. The stores below are the
  outer surface that lets callers stage the three input collections and keep
  the results of past analyses. Implementations: store/sqlite (durable) and
  report/store (in-memory, for tests and dev).

SEMANTICS:
  Replace* calls swap a whole collection atomically; input order must be
  preserved because the engine's tie-breaking depends on it. Report runs are
  append-only; LatestRun returns nil when nothing has been persisted yet.
*/
package report

import (
	"context"
	"time"
)

// DatasetCounts summarizes what is currently staged.
type DatasetCounts struct {
	Sellers         int
	Products        int
	PurchaseRecords int
}

// DatasetStore stages the three input collections between calls.
type DatasetStore interface {
	ReplaceSellers(ctx context.Context, sellers []Seller) error
	ReplaceProducts(ctx context.Context, products []Product) error
	ReplacePurchaseRecords(ctx context.Context, records []PurchaseRecord) error

	// LoadDataset returns the staged collections in their stored order.
	// Collections never staged come back nil, so a loaded Dataset passes
	// through the same validation gate as an inline one.
	LoadDataset(ctx context.Context) (Dataset, error)

	Counts(ctx context.Context) (DatasetCounts, error)
}

// ReportRun is one persisted analysis result.
type ReportRun struct {
	ID        string
	CreatedAt time.Time
	Reports   []SellerReport
}

// ReportStore keeps past analysis runs.
type ReportStore interface {
	SaveRun(ctx context.Context, run ReportRun) error

	// LatestRun returns the most recent run, or nil when none exists.
	LatestRun(ctx context.Context) (*ReportRun, error)
}
