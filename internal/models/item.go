package models

import "time"

// Item is a stocked product. Category is stored as free text rather
// than a foreign key; the categories table only backs the picker and
// the uniqueness rule.
type Item struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `gorm:"not null;index" json:"category"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Cost        float64 `gorm:"not null;default:0" json:"cost"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int     `gorm:"not null;default:0" json:"min_quantity"`
	SKU         string  `gorm:"column:sku;index" json:"sku,omitempty"`
	Barcode     string  `gorm:"index" json:"barcode,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i Item) GetID() uint { return i.ID }

// IsLowStock reports whether the item is at or below its reorder level.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// StockValue is the cost value of the quantity on hand.
func (i Item) StockValue() float64 {
	return float64(i.Quantity) * i.Cost
}
