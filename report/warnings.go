/*
warnings.go - Non-fatal observability side-channel for the join pass

PURPOSE:
  A purchase record referencing an unknown seller id, or a line item with an
  unknown SKU, is recoverable-locally: the unit is skipped and the rest of
  the pipeline proceeds. These skips must be observable without touching the
  return value or control flow, so they go through a WarningSink.

IMPLEMENTATIONS:
  LogSink:     Default. Writes structured warnings through zerolog.
  CollectSink: Records warnings in memory; used by tests to assert on skips.
*/
package report

import (
	"github.com/rs/zerolog"
)

// WarningSink receives join anomalies. Implementations must not panic; the
// engine treats every call as fire-and-forget.
type WarningSink interface {
	// UnknownSeller is called once per dropped record. recordIndex is the
	// record's position in the input sequence.
	UnknownSeller(recordIndex int, sellerID string)

	// UnknownProduct is called once per skipped line item.
	UnknownProduct(recordIndex int, sku string)
}

// =============================================================================
// LOG SINK - zerolog-backed default
// =============================================================================

// LogSink logs warnings through zerolog.
type LogSink struct {
	Logger zerolog.Logger
}

// NewLogSink creates the default warning sink on top of the given logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) UnknownSeller(recordIndex int, sellerID string) {
	s.Logger.Warn().
		Int("record_index", recordIndex).
		Str("seller_id", sellerID).
		Msg("purchase record references unknown seller, record dropped")
}

func (s *LogSink) UnknownProduct(recordIndex int, sku string) {
	s.Logger.Warn().
		Int("record_index", recordIndex).
		Str("sku", sku).
		Msg("line item references unknown product, item skipped")
}

// =============================================================================
// COLLECT SINK - in-memory, for tests
// =============================================================================

// Warning is one recorded join anomaly.
type Warning struct {
	Kind        string // "unknown_seller" or "unknown_product"
	RecordIndex int
	Ref         string // the unresolved seller id or SKU
}

// CollectSink records warnings in memory in emission order.
type CollectSink struct {
	Entries []Warning
}

func (s *CollectSink) UnknownSeller(recordIndex int, sellerID string) {
	s.Entries = append(s.Entries, Warning{Kind: "unknown_seller", RecordIndex: recordIndex, Ref: sellerID})
}

func (s *CollectSink) UnknownProduct(recordIndex int, sku string) {
	s.Entries = append(s.Entries, Warning{Kind: "unknown_product", RecordIndex: recordIndex, Ref: sku})
}
