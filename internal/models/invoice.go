package models

import "time"

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice stores its totals as snapshots computed at creation time from
// the selected line items and tax rate; nothing re-derives them if the
// lines change afterwards.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Customer      *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	Date          time.Time     `gorm:"not null" json:"date"`
	Subtotal      float64       `gorm:"not null;default:0" json:"subtotal"`
	TaxRate       float64       `gorm:"not null;default:0" json:"tax_rate"`
	TaxAmount     float64       `gorm:"not null;default:0" json:"tax_amount"`
	Total         float64       `gorm:"not null;default:0" json:"total"`
	Status        InvoiceStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i Invoice) GetID() uint { return i.ID }

// IsDraft returns true while the invoice can still be edited.
func (i Invoice) IsDraft() bool { return i.Status == InvoiceStatusDraft }

// InvoiceItem is a line-item snapshot: quantity and unit price are
// frozen at invoice creation and TotalPrice == Quantity * UnitPrice at
// that moment only.
type InvoiceItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	InvoiceID  uint    `gorm:"not null;index" json:"invoice_id"`
	ItemID     uint    `gorm:"not null;index" json:"item_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
}

func (li InvoiceItem) GetID() uint { return li.ID }

// LineTotal recomputes quantity * unit price (not the stored snapshot).
func (li InvoiceItem) LineTotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// InvoiceWithItems is the composite result of a detail fetch.
type InvoiceWithItems struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}
