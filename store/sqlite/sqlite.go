/*
Package sqlite provides a SQLite-backed implementation of the report
storage interfaces.

PURPOSE:
  Implements report.DatasetStore and report.ReportStore using SQLite. The
  staged collections survive restarts, and past report runs are kept as an
  append-only history.

KEY TABLES:
  sellers, products, purchase_records:  The staged input collections. Each
                                        row carries a position column so the
                                        engine sees them in input order.
  report_runs:                          Append-only history of analyses.

ORDER PRESERVATION:
  The engine's tie-breaking depends on input order (seller-list order for
  equal profits, first-seen order for equal top-product quantities), so
  every load is ORDER BY position.

DECIMAL STORAGE:
  Monetary values are stored as TEXT and re-parsed with shopspring/decimal,
  never as REAL, so no precision is lost on the round trip.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and opens the database in WAL mode.

USAGE:
  st, err := sqlite.New("./data/sales.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - report/store.go: Interface definitions
  - report/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/sales-engine/report"
)

// Store implements the report storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sellers (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		start_date TEXT,
		pos_title TEXT
	);

	CREATE TABLE IF NOT EXISTS products (
		position INTEGER PRIMARY KEY,
		sku TEXT NOT NULL,
		name TEXT,
		category TEXT,
		purchase_price TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS purchase_records (
		position INTEGER PRIMARY KEY,
		seller_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		record_date TEXT,
		total_amount TEXT NOT NULL,
		total_discount TEXT NOT NULL,
		items_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		reports_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_purchase_records_seller ON purchase_records(seller_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// replaceAll swaps a whole table inside one transaction.
func (s *Store) replaceAll(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// =============================================================================
// DATASET STORE
// =============================================================================

func (s *Store) ReplaceSellers(ctx context.Context, sellers []report.Seller) error {
	return s.replaceAll(ctx, "sellers", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO sellers (position, id, first_name, last_name, start_date, pos_title) VALUES (?, ?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, sl := range sellers {
			if _, err := stmt.ExecContext(ctx, i, sl.ID, sl.FirstName, sl.LastName, sl.StartDate, sl.Position); err != nil {
				return fmt.Errorf("failed to insert seller %q: %w", sl.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) ReplaceProducts(ctx context.Context, products []report.Product) error {
	return s.replaceAll(ctx, "products", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO products (position, sku, name, category, purchase_price) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, p := range products {
			if _, err := stmt.ExecContext(ctx, i, p.SKU, p.Name, p.Category, p.PurchasePrice.String()); err != nil {
				return fmt.Errorf("failed to insert product %q: %w", p.SKU, err)
			}
		}
		return nil
	})
}

func (s *Store) ReplacePurchaseRecords(ctx context.Context, records []report.PurchaseRecord) error {
	return s.replaceAll(ctx, "purchase_records", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO purchase_records (position, seller_id, customer_id, record_date, total_amount, total_discount, items_json) VALUES (?, ?, ?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, rec := range records {
			items, err := json.Marshal(toItemRows(rec.Items))
			if err != nil {
				return fmt.Errorf("failed to encode items: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, i, rec.SellerID, rec.CustomerID, rec.Date,
				rec.TotalAmount.String(), rec.TotalDiscount.String(), string(items)); err != nil {
				return fmt.Errorf("failed to insert purchase record %d: %w", i, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadDataset(ctx context.Context) (report.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data report.Dataset

	sellers, err := s.loadSellers(ctx)
	if err != nil {
		return report.Dataset{}, err
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return report.Dataset{}, err
	}
	records, err := s.loadPurchaseRecords(ctx)
	if err != nil {
		return report.Dataset{}, err
	}

	data.Sellers = sellers
	data.Products = products
	data.PurchaseRecords = records
	return data, nil
}

func (s *Store) loadSellers(ctx context.Context) ([]report.Seller, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, start_date, pos_title FROM sellers ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}
	defer rows.Close()

	var sellers []report.Seller
	for rows.Next() {
		var sl report.Seller
		if err := rows.Scan(&sl.ID, &sl.FirstName, &sl.LastName, &sl.StartDate, &sl.Position); err != nil {
			return nil, err
		}
		sellers = append(sellers, sl)
	}
	return sellers, rows.Err()
}

func (s *Store) loadProducts(ctx context.Context) ([]report.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT sku, name, category, purchase_price FROM products ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	var products []report.Product
	for rows.Next() {
		var p report.Product
		var price string
		if err := rows.Scan(&p.SKU, &p.Name, &p.Category, &price); err != nil {
			return nil, err
		}
		p.PurchasePrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("corrupt purchase_price for %q: %w", p.SKU, err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) loadPurchaseRecords(ctx context.Context) ([]report.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seller_id, customer_id, record_date, total_amount, total_discount, items_json FROM purchase_records ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase records: %w", err)
	}
	defer rows.Close()

	var records []report.PurchaseRecord
	for rows.Next() {
		var rec report.PurchaseRecord
		var amount, discount, itemsJSON string
		if err := rows.Scan(&rec.SellerID, &rec.CustomerID, &rec.Date, &amount, &discount, &itemsJSON); err != nil {
			return nil, err
		}
		if rec.TotalAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt total_amount: %w", err)
		}
		if rec.TotalDiscount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("corrupt total_discount: %w", err)
		}

		var items []itemRow
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("corrupt items_json: %w", err)
		}
		rec.Items, err = fromItemRows(items)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Counts(ctx context.Context) (report.DatasetCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts report.DatasetCounts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"sellers", &counts.Sellers},
		{"products", &counts.Products},
		{"purchase_records", &counts.PurchaseRecords},
	} {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return report.DatasetCounts{}, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}
	return counts, nil
}

// =============================================================================
// REPORT STORE
// =============================================================================

func (s *Store) SaveRun(ctx context.Context, run report.ReportRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := json.Marshal(toReportRows(run.Reports))
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO report_runs (id, created_at, reports_json) VALUES (?, ?, ?)",
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), string(reports))
	if err != nil {
		return fmt.Errorf("failed to insert report run: %w", err)
	}
	return nil
}

func (s *Store) LatestRun(ctx context.Context) (*report.ReportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		run       report.ReportRun
		createdAt string
		reports   string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, reports_json FROM report_runs ORDER BY rowid DESC LIMIT 1").
		Scan(&run.ID, &createdAt, &reports)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt created_at: %w", err)
	}

	var rows []reportRow
	if err := json.Unmarshal([]byte(reports), &rows); err != nil {
		return nil, fmt.Errorf("corrupt reports_json: %w", err)
	}
	if run.Reports, err = fromReportRows(rows); err != nil {
		return nil, err
	}
	return &run, nil
}

// =============================================================================
// ROW CODECS - stable JSON shapes for the TEXT columns
// =============================================================================

type itemRow struct {
	SKU       string  `json:"sku"`
	Quantity  *int64  `json:"quantity,omitempty"`
	SalePrice *string `json:"sale_price,omitempty"`
	Discount  *string `json:"discount,omitempty"`
}

func toItemRows(items []report.LineItem) []itemRow {
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow{SKU: it.SKU, Quantity: it.Quantity}
		if it.SalePrice != nil {
			v := it.SalePrice.String()
			rows[i].SalePrice = &v
		}
		if it.Discount != nil {
			v := it.Discount.String()
			rows[i].Discount = &v
		}
	}
	return rows
}

func fromItemRows(rows []itemRow) ([]report.LineItem, error) {
	items := make([]report.LineItem, len(rows))
	for i, r := range rows {
		items[i] = report.LineItem{SKU: r.SKU, Quantity: r.Quantity}
		if r.SalePrice != nil {
			d, err := decimal.NewFromString(*r.SalePrice)
			if err != nil {
				return nil, fmt.Errorf("corrupt sale_price: %w", err)
			}
			items[i].SalePrice = &d
		}
		if r.Discount != nil {
			d, err := decimal.NewFromString(*r.Discount)
			if err != nil {
				return nil, fmt.Errorf("corrupt discount: %w", err)
			}
			items[i].Discount = &d
		}
	}
	return items, nil
}

type topProductRow struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

type reportRow struct {
	SellerID    string          `json:"seller_id"`
	Name        string          `json:"name"`
	Revenue     string          `json:"revenue"`
	Profit      string          `json:"profit"`
	SalesCount  int             `json:"sales_count"`
	TopProducts []topProductRow `json:"top_products"`
	Bonus       string          `json:"bonus"`
}

func toReportRows(reports []report.SellerReport) []reportRow {
	rows := make([]reportRow, len(reports))
	for i, r := range reports {
		tops := make([]topProductRow, len(r.TopProducts))
		for j, tp := range r.TopProducts {
			tops[j] = topProductRow{SKU: tp.SKU, Quantity: tp.Quantity}
		}
		rows[i] = reportRow{
			SellerID:    r.SellerID,
			Name:        r.Name,
			Revenue:     r.Revenue.String(),
			Profit:      r.Profit.String(),
			SalesCount:  r.SalesCount,
			TopProducts: tops,
			Bonus:       r.Bonus.String(),
		}
	}
	return rows
}

func fromReportRows(rows []reportRow) ([]report.SellerReport, error) {
	reports := make([]report.SellerReport, len(rows))
	for i, r := range rows {
		revenue, err := decimal.NewFromString(r.Revenue)
		if err != nil {
			return nil, fmt.Errorf("corrupt revenue: %w", err)
		}
		profit, err := decimal.NewFromString(r.Profit)
		if err != nil {
			return nil, fmt.Errorf("corrupt profit: %w", err)
		}
		bonus, err := decimal.NewFromString(r.Bonus)
		if err != nil {
			return nil, fmt.Errorf("corrupt bonus: %w", err)
		}

		tops := make([]report.TopProduct, len(r.TopProducts))
		for j, tp := range r.TopProducts {
			tops[j] = report.TopProduct{SKU: tp.SKU, Quantity: tp.Quantity}
		}
		reports[i] = report.SellerReport{
			SellerID:    r.SellerID,
			Name:        r.Name,
			Revenue:     revenue,
			Profit:      profit,
			SalesCount:  r.SalesCount,
			TopProducts: tops,
			Bonus:       bonus,
		}
	}
	return reports, nil
}
