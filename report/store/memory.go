// Package store provides in-memory implementations of the report storage
// interfaces, used in tests and for running the server without a database.
package store

import (
	"context"
	"sync"

	"github.com/warp/sales-engine/report"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements report.DatasetStore and report.ReportStore.
type Memory struct {
	mu       sync.RWMutex
	sellers  []report.Seller
	products []report.Product
	records  []report.PurchaseRecord
	runs     []report.ReportRun
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReplaceSellers(_ context.Context, sellers []report.Seller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sellers = append([]report.Seller{}, sellers...)
	return nil
}

func (m *Memory) ReplaceProducts(_ context.Context, products []report.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append([]report.Product{}, products...)
	return nil
}

func (m *Memory) ReplacePurchaseRecords(_ context.Context, records []report.PurchaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]report.PurchaseRecord{}, records...)
	return nil
}

func (m *Memory) LoadDataset(_ context.Context) (report.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var data report.Dataset
	if m.sellers != nil {
		data.Sellers = append([]report.Seller{}, m.sellers...)
	}
	if m.products != nil {
		data.Products = append([]report.Product{}, m.products...)
	}
	if m.records != nil {
		data.PurchaseRecords = append([]report.PurchaseRecord{}, m.records...)
	}
	return data, nil
}

func (m *Memory) Counts(_ context.Context) (report.DatasetCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return report.DatasetCounts{
		Sellers:         len(m.sellers),
		Products:        len(m.products),
		PurchaseRecords: len(m.records),
	}, nil
}

func (m *Memory) SaveRun(_ context.Context, run report.ReportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *Memory) LatestRun(_ context.Context) (*report.ReportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.runs) == 0 {
		return nil, nil
	}
	run := m.runs[len(m.runs)-1]
	return &run, nil
}
