/*
handlers.go - HTTP API handlers for the sales report engine

PURPOSE:
  Exposes the report engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and the stores.

ENDPOINTS:
  Datasets:
    POST   /api/datasets/sellers    Replace the staged seller collection
    POST   /api/datasets/products   Replace the staged product collection
    POST   /api/datasets/purchases  Replace the staged purchase records
    GET    /api/datasets/summary    Counts of the staged collections

  Reports:
    POST   /api/reports/analyze     Stateless analysis of an inline dataset
    POST   /api/reports/run         Analyze the staged dataset, persist the run
    GET    /api/reports/latest      Most recent persisted run

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation taxonomy (bad structure, empty input, bad strategies)
  - 404: No staged dataset / no persisted run yet
  - 500: Store failures, internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/sales-engine/factory"
	"github.com/warp/sales-engine/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Datasets report.DatasetStore
	Reports  report.ReportStore
	Factory  *factory.StrategyFactory
	Logger   zerolog.Logger
}

// NewHandler creates a new handler with the given stores.
func NewHandler(datasets report.DatasetStore, reports report.ReportStore, logger zerolog.Logger) *Handler {
	return &Handler{
		Datasets: datasets,
		Reports:  reports,
		Factory:  factory.NewStrategyFactory(),
		Logger:   logger,
	}
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// ReplaceSellers swaps the staged seller collection.
func (h *Handler) ReplaceSellers(w http.ResponseWriter, r *http.Request) {
	var dtos []SellerDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sellers := make([]report.Seller, len(dtos))
	for i, d := range dtos {
		sellers[i] = toSeller(d)
	}

	if err := h.Datasets.ReplaceSellers(r.Context(), sellers); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store sellers", err)
		return
	}
	writeJSON(w, http.StatusOK, ReplacedDTO{Collection: "sellers", Count: len(sellers)})
}

// ReplaceProducts swaps the staged product collection.
func (h *Handler) ReplaceProducts(w http.ResponseWriter, r *http.Request) {
	var dtos []ProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	products := make([]report.Product, len(dtos))
	for i, d := range dtos {
		products[i] = toProduct(d)
	}

	if err := h.Datasets.ReplaceProducts(r.Context(), products); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store products", err)
		return
	}
	writeJSON(w, http.StatusOK, ReplacedDTO{Collection: "products", Count: len(products)})
}

// ReplacePurchases swaps the staged purchase record collection.
func (h *Handler) ReplacePurchases(w http.ResponseWriter, r *http.Request) {
	var dtos []PurchaseRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	records := make([]report.PurchaseRecord, len(dtos))
	for i, d := range dtos {
		records[i] = toPurchaseRecord(d)
	}

	if err := h.Datasets.ReplacePurchaseRecords(r.Context(), records); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store purchase records", err)
		return
	}
	writeJSON(w, http.StatusOK, ReplacedDTO{Collection: "purchase_records", Count: len(records)})
}

// DatasetSummary reports how many records are staged per collection.
func (h *Handler) DatasetSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Datasets.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, DatasetSummaryDTO{
		Sellers:         counts.Sellers,
		Products:        counts.Products,
		PurchaseRecords: counts.PurchaseRecords,
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// Analyze runs the engine over an inline dataset without touching storage.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	opts, err := h.Factory.FromJSON(req.Options)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid options", err)
		return
	}
	opts.Warnings = report.NewLogSink(h.Logger)

	data := toDataset(req.Sellers, req.Products, req.PurchaseRecords)
	reports, err := report.Analyze(data, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if report.IsInputError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toSellerReportDTOs(reports))
}

// Run analyzes the staged dataset and persists the result as a report run.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	opts, err := h.Factory.FromJSON(req.Options)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid options", err)
		return
	}
	opts.Warnings = report.NewLogSink(h.Logger)

	data, err := h.Datasets.LoadDataset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dataset", err)
		return
	}
	if len(data.Sellers) == 0 && len(data.Products) == 0 && len(data.PurchaseRecords) == 0 {
		writeError(w, http.StatusNotFound, "No dataset staged", nil)
		return
	}

	reports, err := report.Analyze(data, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if report.IsInputError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Analysis failed", err)
		return
	}

	run := report.ReportRun{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Reports:   reports,
	}
	if err := h.Reports.SaveRun(r.Context(), run); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist run", err)
		return
	}

	h.Logger.Info().
		Str("run_id", run.ID).
		Int("sellers", len(reports)).
		Msg("report run persisted")

	writeJSON(w, http.StatusOK, toReportRunDTO(run))
}

// LatestRun returns the most recent persisted run.
func (h *Handler) LatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Reports.LatestRun(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load latest run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "No report run persisted yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, toReportRunDTO(*run))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
