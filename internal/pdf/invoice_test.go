package pdf

import (
	"strings"
	"testing"
	"time"

	"stockpilot/backend/internal/models"
)

func TestRender(t *testing.T) {
	data := Data{
		Invoice: models.Invoice{
			InvoiceNumber: "INV-2026-0001",
			Date:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Subtotal:      20.01,
			TaxRate:       0.20,
			TaxAmount:     4.00,
			Total:         24.01,
			Status:        models.InvoiceStatusDraft,
		},
		Items: []models.InvoiceItem{
			{ItemID: 1, Quantity: 2, UnitPrice: 10.005, TotalPrice: 20.01},
		},
		Customer:  models.Customer{Name: "Acme"},
		ItemNames: map[uint]string{1: "Widget"},
	}
	doc, err := Render(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(doc), "%PDF") {
		t.Fatal("output is not a PDF document")
	}
}

func TestRenderWithoutItemNames(t *testing.T) {
	data := Data{
		Invoice: models.Invoice{InvoiceNumber: "INV-2026-0002", Date: time.Now(), Status: models.InvoiceStatusDraft},
		Items:   []models.InvoiceItem{{ItemID: 7, Quantity: 1, UnitPrice: 5, TotalPrice: 5}},
	}
	doc, err := Render(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("empty document")
	}
}
