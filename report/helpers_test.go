package report_test

import (
	"github.com/shopspring/decimal"

	"github.com/warp/sales-engine/report"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func i64(n int64) *int64 { return &n }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// item builds a fully-populated line item.
func item(sku string, qty int64, price, discount string) report.LineItem {
	return report.LineItem{SKU: sku, Quantity: i64(qty), SalePrice: dp(price), Discount: dp(discount)}
}

func seller(id, first, last string) report.Seller {
	return report.Seller{ID: id, FirstName: first, LastName: last, StartDate: "2020-01-01", Position: "sales"}
}

func product(sku, price string) report.Product {
	return report.Product{SKU: sku, Name: "Product " + sku, PurchasePrice: d(price)}
}

func purchase(sellerID, customerID, date string, total, discount string, items ...report.LineItem) report.PurchaseRecord {
	return report.PurchaseRecord{
		SellerID:      sellerID,
		CustomerID:    customerID,
		Date:          date,
		TotalAmount:   d(total),
		TotalDiscount: d(discount),
		Items:         items,
	}
}

// collectOpts returns default options with an attached collecting sink.
func collectOpts() (*report.Options, *report.CollectSink) {
	sink := &report.CollectSink{}
	opts := report.DefaultOptions()
	opts.Warnings = sink
	return opts, sink
}
