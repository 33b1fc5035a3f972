package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

type InvoiceRepository struct {
	Repository[models.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{NewRepository[models.Invoice](db)}
}

func (r *InvoiceRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Invoice, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	if err := db.Where("customer_id = ?", customerID).Order("date desc").Find(&invoices).Error; err != nil {
		return nil, classify(err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) FindByStatus(ctx context.Context, status models.InvoiceStatus) ([]models.Invoice, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	if err := db.Where("status = ?", status).Order("date desc").Find(&invoices).Error; err != nil {
		return nil, classify(err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return r.first(ctx, "invoice_number = ?", number)
}

// NextInvoiceNumber derives INV-<year>-NNNN from the current row count.
// Two near-simultaneous creations can derive the same number; the
// invoice service resolves that race by retrying against the unique
// index on invoice_number.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), count+1), nil
}

// GetWithItems fetches an invoice together with its line items as one
// composite result. A missing invoice id yields (nil, nil).
func (r *InvoiceRepository) GetWithItems(ctx context.Context, invoiceID uint) (*models.InvoiceWithItems, error) {
	inv, err := r.FindByID(ctx, invoiceID)
	if err != nil || inv == nil {
		return nil, err
	}
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var items []models.InvoiceItem
	if err := db.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return &models.InvoiceWithItems{Invoice: *inv, Items: items}, nil
}

type InvoiceItemRepository struct {
	Repository[models.InvoiceItem]
}

func NewInvoiceItemRepository(db *gorm.DB) *InvoiceItemRepository {
	return &InvoiceItemRepository{NewRepository[models.InvoiceItem](db)}
}

func (r *InvoiceItemRepository) FindByInvoice(ctx context.Context, invoiceID uint) ([]models.InvoiceItem, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var items []models.InvoiceItem
	if err := db.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}
