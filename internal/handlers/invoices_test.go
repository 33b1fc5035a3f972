package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/services"
)

func newInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return NewInvoiceHandler(
		services.NewInvoiceService(db),
		repository.NewInvoiceRepository(db),
		repository.NewItemRepository(db),
		repository.NewCustomerRepository(db),
	)
}

func seedInvoiceFixtures(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	customer := models.Customer{Name: "Acme"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("customer: %v", err)
	}
	item := models.Item{Name: "Widget", Category: "Other", Price: 10, Quantity: 50}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("item: %v", err)
	}
	return customer.ID, item.ID
}

func TestInvoiceCreateAndDetail(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"tax_rate":0.2,"items":[{"item_id":%d,"quantity":3}]}`, custID, itemID)
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Collection(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Invoice.Total != 36 {
		t.Fatalf("total = %v, want 36", created.Invoice.Total)
	}
	if len(created.Items) != 1 {
		t.Fatalf("expected 1 line got %d", len(created.Items))
	}

	w = httptest.NewRecorder()
	h.Resource(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/invoice?id=%d", created.Invoice.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detail: expected 200 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Resource(w, httptest.NewRequest(http.MethodGet, "/invoice?id=9999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing invoice: expected 404 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Resource(w, httptest.NewRequest(http.MethodGet, "/invoice?number="+created.Invoice.InvoiceNumber, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("number lookup: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var byNumber models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &byNumber); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if byNumber.Invoice.ID != created.Invoice.ID || len(byNumber.Items) != 1 {
		t.Fatalf("number lookup returned wrong invoice: %+v", byNumber.Invoice)
	}

	w = httptest.NewRecorder()
	h.Resource(w, httptest.NewRequest(http.MethodGet, "/invoice?number=INV%202024", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed number: expected 400 got %d", w.Code)
	}
}

func TestInvoiceCreateZeroTaxRate(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"tax_rate":0,"items":[{"item_id":%d,"quantity":3}]}`, custID, itemID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Invoice.TaxAmount != 0 || created.Invoice.Total != 30 {
		t.Fatalf("zero rate not honored: tax=%v total=%v", created.Invoice.TaxAmount, created.Invoice.Total)
	}
}

func TestInvoiceCreatePayloadValidation(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"date":"28-08-2026","items":[{"item_id":%d,"quantity":1}]}`, custID, itemID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400 got %d", w.Code)
	}

	body = fmt.Sprintf(`{"customer_id":%d,"items":[{"item_id":%d,"quantity":1,"unit_price":-5}]}`, custID, itemID)
	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative price: expected 400 got %d", w.Code)
	}

	body = fmt.Sprintf(`{"customer_id":%d,"date":"2026-08-28","items":[{"item_id":%d,"quantity":1}]}`, custID, itemID)
	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("valid date: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := created.Invoice.Date.Format("2006-01-02"); got != "2026-08-28" {
		t.Fatalf("date = %s, want 2026-08-28", got)
	}
}

func TestInvoiceCreateRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, _ := seedInvoiceFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"items":[]}`, custID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty lines: expected 400 got %d", w.Code)
	}

	body = `{"customer_id":9999,"items":[{"item_id":1,"quantity":1}]}`
	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown customer: expected 400 got %d", w.Code)
	}
}

func TestInvoiceStatusUpdate(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	body := fmt.Sprintf(`{"customer_id":%d,"items":[{"item_id":%d,"quantity":1}]}`, custID, itemID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	var created models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	target := fmt.Sprintf("/invoice/status?id=%d", created.Invoice.ID)
	w = httptest.NewRecorder()
	h.UpdateStatus(w, httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"status":"paid"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.UpdateStatus(w, httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"status":"bogus"}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400 got %d", w.Code)
	}
}

func TestInvoiceListFilters(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"customer_id":%d,"items":[{"item_id":%d,"quantity":1}]}`, custID, itemID)
		w := httptest.NewRecorder()
		h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d: %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodGet, "/invoices?status=draft", nil))
	var drafts []models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &drafts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts got %d", len(drafts))
	}

	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/invoices?customer_id=%d", custID), nil))
	var mine []models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 for customer got %d", len(mine))
	}
}

func TestInvoiceNextNumberAndPDF(t *testing.T) {
	db := setupTestDB(t)
	h := newInvoiceHandler(db)
	custID, itemID := seedInvoiceFixtures(t, db)

	w := httptest.NewRecorder()
	h.NextNumber(w, httptest.NewRequest(http.MethodGet, "/invoices/next-number", nil))
	var preview map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(preview["invoice_number"], "INV-") {
		t.Fatalf("unexpected preview %q", preview["invoice_number"])
	}

	body := fmt.Sprintf(`{"customer_id":%d,"items":[{"item_id":%d,"quantity":1}]}`, custID, itemID)
	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	var created models.InvoiceWithItems
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = httptest.NewRecorder()
	h.PDF(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/invoice/pdf?id=%d", created.Invoice.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF document")
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, created.Invoice.InvoiceNumber) {
		t.Fatalf("disposition %q does not carry invoice number %q", cd, created.Invoice.InvoiceNumber)
	}
}
