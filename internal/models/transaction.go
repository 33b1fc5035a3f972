package models

import "time"

// TransactionType classifies a stock movement.
type TransactionType string

const (
	TransactionSale       TransactionType = "sale"
	TransactionPurchase   TransactionType = "purchase"
	TransactionAdjustment TransactionType = "adjustment"
)

// Transaction is one entry in the stock-movement ledger. Rows are
// append-only by convention: no update or delete path exists.
type Transaction struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Type       TransactionType `gorm:"size:20;not null;index" json:"type"`
	ItemID     uint            `gorm:"not null;index" json:"item_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  float64         `gorm:"not null" json:"unit_price"`
	TotalPrice float64         `gorm:"not null" json:"total_price"`
	Reference  string          `json:"reference,omitempty"`
	Notes      string          `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (t Transaction) GetID() uint { return t.ID }

// QuantityDelta is the signed effect of the movement on stock on hand.
func (t Transaction) QuantityDelta() int {
	if t.Type == TransactionSale {
		return -t.Quantity
	}
	return t.Quantity
}
