package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stockpilot/backend/internal/excel"
	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/validation"
)

type ItemHandler struct {
	Items *repository.ItemRepository
}

func NewItemHandler(items *repository.ItemRepository) *ItemHandler {
	return &ItemHandler{Items: items}
}

// Collection: GET /items (list), POST /items (create).
func (h *ItemHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

// Resource: GET /item?id=, PATCH /item?id=, DELETE /item?id=.
func (h *ItemHandler) Resource(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPatch, http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if cat := q.Get("category"); cat != "" {
		items, err := h.Items.FindByCategory(r.Context(), cat)
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, items)
		return
	}
	items, err := h.Items.FindAll(r.Context())
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *ItemHandler) create(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", item.Name, v)
	validation.MaxLength("name", item.Name, 255, v)
	validation.Required("category", item.Category, v)
	validation.NonNegativeFloat("price", item.Price, v)
	validation.NonNegativeFloat("cost", item.Cost, v)
	validation.NonNegativeInt("quantity", item.Quantity, v)
	validation.NonNegativeInt("min_quantity", item.MinQuantity, v)
	validation.SKU("sku", item.SKU, v)
	validation.Barcode("barcode", item.Barcode, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	item.ID = 0
	if _, err := h.Items.Create(r.Context(), &item); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		item *models.Item
		err  error
	)
	switch {
	case q.Get("sku") != "":
		item, err = h.Items.FindBySKU(ctx, q.Get("sku"))
	case q.Get("barcode") != "":
		item, err = h.Items.FindByBarcode(ctx, q.Get("barcode"))
	default:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		item, err = h.Items.FindByID(ctx, id)
	}
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if item == nil {
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// allowed patch fields; anything else in the payload is ignored.
var itemPatchFields = map[string]bool{
	"name": true, "description": true, "category": true, "sku": true,
	"barcode": true, "price": true, "cost": true, "quantity": true,
	"min_quantity": true,
}

func (h *ItemHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	fields := map[string]any{}
	for k, val := range payload {
		if itemPatchFields[k] {
			fields[k] = val
		}
	}
	if len(fields) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_update", nil)
		return
	}
	fields["updated_at"] = time.Now()
	if err := h.Items.Update(r.Context(), id, fields); err != nil {
		httpx.RepoError(w, err)
		return
	}
	item, err := h.Items.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if item == nil {
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *ItemHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Items.Delete(r.Context(), id); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Search: GET /items/search?q=...
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_query", nil)
		return
	}
	items, err := h.Items.Search(r.Context(), q)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

// LowStock: GET /items/low-stock
func (h *ItemHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.FindLowStock(r.Context())
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

// Export: GET /items/export streams the inventory as an xlsx workbook.
func (h *ItemHandler) Export(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.FindAll(r.Context())
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	book, err := excel.WriteInventoryReport(items)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inventory-%s.xlsx", time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	w.Write(book)
}
