/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-typed domain model from the external API contract:
  monetary values cross the wire as plain numbers, optional line-item
  fields as nullable numbers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Shape validation happens in the engine's fail-fast gate; handlers only
  translate taxonomy errors to HTTP 400. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/strategy.go: OptionsJSON embedded in AnalyzeRequest
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/sales-engine/factory"
	"github.com/warp/sales-engine/report"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SellerDTO represents one seller record.
type SellerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StartDate string `json:"start_date,omitempty"`
	Position  string `json:"position,omitempty"`
}

// ProductDTO represents one product record.
type ProductDTO struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name,omitempty"`
	Category      string  `json:"category,omitempty"`
	PurchasePrice float64 `json:"purchase_price"`
}

// LineItemDTO represents one line item inside a purchase record. Quantity,
// sale price, and discount stay nullable: absence is meaningful to the
// reference revenue strategy.
type LineItemDTO struct {
	SKU       string   `json:"sku"`
	Quantity  *int64   `json:"quantity,omitempty"`
	SalePrice *float64 `json:"sale_price,omitempty"`
	Discount  *float64 `json:"discount,omitempty"`
}

// PurchaseRecordDTO represents one transaction/receipt.
type PurchaseRecordDTO struct {
	SellerID      string        `json:"seller_id"`
	CustomerID    string        `json:"customer_id"`
	Date          string        `json:"date"`
	TotalAmount   float64       `json:"total_amount"`
	TotalDiscount float64       `json:"total_discount"`
	Items         []LineItemDTO `json:"items"`
}

// AnalyzeRequest carries an inline dataset plus optional strategy config.
type AnalyzeRequest struct {
	Sellers         []SellerDTO          `json:"sellers"`
	Products        []ProductDTO         `json:"products"`
	PurchaseRecords []PurchaseRecordDTO  `json:"purchase_records"`
	Options         *factory.OptionsJSON `json:"options,omitempty"`
}

// RunRequest selects strategies for a run over the stored dataset.
type RunRequest struct {
	Options *factory.OptionsJSON `json:"options,omitempty"`
}

// TopProductDTO is one best-sellers entry.
type TopProductDTO struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// SellerReportDTO is the public per-seller result.
type SellerReportDTO struct {
	SellerID    string          `json:"seller_id"`
	Name        string          `json:"name"`
	Revenue     float64         `json:"revenue"`
	Profit      float64         `json:"profit"`
	SalesCount  int             `json:"sales_count"`
	TopProducts []TopProductDTO `json:"top_products"`
	Bonus       float64         `json:"bonus"`
}

// ReportRunDTO is one persisted analysis run.
type ReportRunDTO struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	Reports   []SellerReportDTO `json:"reports"`
}

// DatasetSummaryDTO reports what is currently staged.
type DatasetSummaryDTO struct {
	Sellers         int `json:"sellers"`
	Products        int `json:"products"`
	PurchaseRecords int `json:"purchase_records"`
}

// ReplacedDTO acknowledges a collection replacement.
type ReplacedDTO struct {
	Collection string `json:"collection"`
	Count      int    `json:"count"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toSeller(dto SellerDTO) report.Seller {
	return report.Seller{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		StartDate: dto.StartDate,
		Position:  dto.Position,
	}
}

func toProduct(dto ProductDTO) report.Product {
	return report.Product{
		SKU:           dto.SKU,
		Name:          dto.Name,
		Category:      dto.Category,
		PurchasePrice: decimal.NewFromFloat(dto.PurchasePrice),
	}
}

func toLineItem(dto LineItemDTO) report.LineItem {
	item := report.LineItem{SKU: dto.SKU, Quantity: dto.Quantity}
	if dto.SalePrice != nil {
		d := decimal.NewFromFloat(*dto.SalePrice)
		item.SalePrice = &d
	}
	if dto.Discount != nil {
		d := decimal.NewFromFloat(*dto.Discount)
		item.Discount = &d
	}
	return item
}

func toPurchaseRecord(dto PurchaseRecordDTO) report.PurchaseRecord {
	rec := report.PurchaseRecord{
		SellerID:      dto.SellerID,
		CustomerID:    dto.CustomerID,
		Date:          dto.Date,
		TotalAmount:   decimal.NewFromFloat(dto.TotalAmount),
		TotalDiscount: decimal.NewFromFloat(dto.TotalDiscount),
	}
	if dto.Items != nil {
		rec.Items = make([]report.LineItem, len(dto.Items))
		for i, it := range dto.Items {
			rec.Items[i] = toLineItem(it)
		}
	}
	return rec
}

// toDataset converts request collections, preserving nil-ness so the
// engine's structure validation still sees what was never provided.
func toDataset(sellers []SellerDTO, products []ProductDTO, records []PurchaseRecordDTO) report.Dataset {
	var data report.Dataset
	if sellers != nil {
		data.Sellers = make([]report.Seller, len(sellers))
		for i, s := range sellers {
			data.Sellers[i] = toSeller(s)
		}
	}
	if products != nil {
		data.Products = make([]report.Product, len(products))
		for i, p := range products {
			data.Products[i] = toProduct(p)
		}
	}
	if records != nil {
		data.PurchaseRecords = make([]report.PurchaseRecord, len(records))
		for i, r := range records {
			data.PurchaseRecords[i] = toPurchaseRecord(r)
		}
	}
	return data
}

func toSellerReportDTO(r report.SellerReport) SellerReportDTO {
	tops := make([]TopProductDTO, len(r.TopProducts))
	for i, tp := range r.TopProducts {
		tops[i] = TopProductDTO{SKU: tp.SKU, Quantity: tp.Quantity}
	}
	return SellerReportDTO{
		SellerID:    r.SellerID,
		Name:        r.Name,
		Revenue:     r.Revenue.InexactFloat64(),
		Profit:      r.Profit.InexactFloat64(),
		SalesCount:  r.SalesCount,
		TopProducts: tops,
		Bonus:       r.Bonus.InexactFloat64(),
	}
}

func toSellerReportDTOs(reports []report.SellerReport) []SellerReportDTO {
	dtos := make([]SellerReportDTO, len(reports))
	for i, r := range reports {
		dtos[i] = toSellerReportDTO(r)
	}
	return dtos
}

func toReportRunDTO(run report.ReportRun) ReportRunDTO {
	return ReportRunDTO{
		ID:        run.ID,
		CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
		Reports:   toSellerReportDTOs(run.Reports),
	}
}
