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

func newTransactionHandler(db *gorm.DB) *TransactionHandler {
	return NewTransactionHandler(services.NewInventoryService(db), repository.NewTransactionRepository(db))
}

func TestTransactionRecordAndList(t *testing.T) {
	db := setupTestDB(t)
	h := newTransactionHandler(db)
	item := models.Item{Name: "Widget", Category: "Other", Quantity: 10}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := fmt.Sprintf(`{"type":"sale","item_id":%d,"quantity":4,"unit_price":9.5}`, item.ID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var entry models.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.TotalPrice != 38 {
		t.Fatalf("total = %v, want 38", entry.TotalPrice)
	}

	var reloaded models.Item
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Quantity != 6 {
		t.Fatalf("quantity = %d, want 6", reloaded.Quantity)
	}

	w = httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodGet, "/transactions?type=sale", nil))
	var sales []models.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &sales); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected 1 sale got %d", len(sales))
	}
}

func TestTransactionInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	h := newTransactionHandler(db)
	item := models.Item{Name: "Widget", Category: "Other", Quantity: 2}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := fmt.Sprintf(`{"type":"sale","item_id":%d,"quantity":5}`, item.ID)
	w := httptest.NewRecorder()
	h.Collection(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestTransactionHistory(t *testing.T) {
	db := setupTestDB(t)
	h := newTransactionHandler(db)
	item := models.Item{Name: "Widget", Category: "Other", Quantity: 100}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	for i := 0; i < 4; i++ {
		body := fmt.Sprintf(`{"type":"purchase","item_id":%d,"quantity":%d}`, item.ID, i+1)
		w := httptest.NewRecorder()
		h.Collection(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("record %d: %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.History(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/transactions/history?item_id=%d&limit=2", item.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var history []models.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries got %d", len(history))
	}

	w = httptest.NewRecorder()
	h.History(w, httptest.NewRequest(http.MethodGet, "/transactions/history", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing item_id: expected 400 got %d", w.Code)
	}
}
