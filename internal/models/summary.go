package models

import "time"

// StockSummary is the dashboard aggregate served by the reports
// endpoint and optionally cached.
type StockSummary struct {
	ItemCount      int64     `json:"item_count"`
	CustomerCount  int64     `json:"customer_count"`
	InvoiceCount   int64     `json:"invoice_count"`
	TotalQuantity  int64     `json:"total_quantity"`
	InventoryValue float64   `json:"inventory_value"`
	LowStockCount  int64     `json:"low_stock_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}
