package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/finance"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
)

var (
	ErrEmptyInvoice   = errors.New("invoice has no line items")
	ErrUnknownItem    = errors.New("line item references unknown item")
	ErrNoSuchCustomer = errors.New("unknown customer")
)

// numberRetries bounds the duplicate-number retry loop. The number is
// derived count+1, so two concurrent creations can collide on the
// unique index; a fresh derivation after the rollback resolves it.
const numberRetries = 3

// InvoiceService owns invoice creation: numbering, total snapshots,
// and the all-or-nothing insert of the invoice with its line items.
type InvoiceService struct {
	db        *gorm.DB
	invoices  *repository.InvoiceRepository
	items     *repository.ItemRepository
	customers *repository.CustomerRepository
}

func NewInvoiceService(conn *gorm.DB) *InvoiceService {
	return &InvoiceService{
		db:        conn,
		invoices:  repository.NewInvoiceRepository(conn),
		items:     repository.NewItemRepository(conn),
		customers: repository.NewCustomerRepository(conn),
	}
}

// LineRequest selects an item and quantity for a new invoice. A zero
// UnitPrice means "use the item's current price"; a non-zero value
// overrides it, matching the editable price column on the entry form.
type LineRequest struct {
	ItemID    uint    `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

// CreateInput carries everything needed to create an invoice. A nil
// TaxRate applies the standard VAT rate; an explicit 0 creates a
// tax-free invoice.
type CreateInput struct {
	CustomerID uint          `json:"customer_id"`
	Date       time.Time     `json:"date"`
	TaxRate    *float64      `json:"tax_rate"`
	Notes      string        `json:"notes,omitempty"`
	Lines      []LineRequest `json:"items"`
}

// Create inserts the invoice and all of its line items inside one
// transaction: either everything lands or nothing does. Unit prices
// and line totals are frozen at this moment; stock is not touched.
func (s *InvoiceService) Create(ctx context.Context, in CreateInput) (*models.InvoiceWithItems, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyInvoice
	}
	customer, err := s.customers.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNoSuchCustomer
	}

	lines := make([]models.InvoiceItem, 0, len(in.Lines))
	totalInputs := make([]finance.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ItemID == 0 || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item=%d quantity=%d", ErrUnknownItem, l.ItemID, l.Quantity)
		}
		item, err := s.items.FindByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: item=%d", ErrUnknownItem, l.ItemID)
		}
		unitPrice := l.UnitPrice
		if unitPrice == 0 {
			unitPrice = item.Price
		}
		lines = append(lines, models.InvoiceItem{
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: finance.Round2(float64(l.Quantity) * unitPrice),
		})
		totalInputs = append(totalInputs, finance.LineInput{Quantity: l.Quantity, UnitPrice: unitPrice})
	}

	rate := finance.DefaultVATRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}
	totals := finance.InvoiceTotals(totalInputs, rate)
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	var created models.Invoice
	for attempt := 0; attempt < numberRetries; attempt++ {
		number, err := s.invoices.NextInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
		inv := models.Invoice{
			CustomerID:    in.CustomerID,
			InvoiceNumber: number,
			Date:          date,
			Subtotal:      totals.Subtotal,
			TaxRate:       rate,
			TaxAmount:     totals.VAT,
			Total:         totals.Total,
			Status:        models.InvoiceStatusDraft,
			Notes:         in.Notes,
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
			for i := range lines {
				lines[i].ID = 0
				lines[i].InvoiceID = inv.ID
			}
			return tx.Create(&lines).Error
		})
		if err == nil {
			created = inv
			break
		}
		if isDuplicateNumber(err) && attempt < numberRetries-1 {
			continue
		}
		return nil, repositoryClassify(err)
	}

	return &models.InvoiceWithItems{Invoice: created, Items: lines}, nil
}

// UpdateStatus moves an invoice through draft/sent/paid/overdue.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uint, status models.InvoiceStatus) error {
	switch status {
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusOverdue:
	default:
		return fmt.Errorf("invalid invoice status %q", status)
	}
	return s.invoices.Update(ctx, id, map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func isDuplicateNumber(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "invoice_number")
}

// repositoryClassify funnels raw transaction errors through the same
// taxonomy the repositories expose.
func repositoryClassify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", repository.ErrConstraint, err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %v", repository.ErrConstraint, err)
	}
	return err
}
