package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/services"
)

type TransactionHandler struct {
	Service      *services.InventoryService
	Transactions *repository.TransactionRepository
}

func NewTransactionHandler(svc *services.InventoryService, transactions *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{Service: svc, Transactions: transactions}
}

// Collection: GET /transactions (optionally ?item_id= or ?type=),
// POST /transactions records a movement through the service.
func (h *TransactionHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.record(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

func (h *TransactionHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		entries []models.Transaction
		err     error
	)
	switch {
	case q.Get("item_id") != "":
		var id uint
		if _, serr := fmt.Sscanf(q.Get("item_id"), "%d", &id); serr != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_item_id", nil)
			return
		}
		entries, err = h.Transactions.FindByItem(ctx, id)
	case q.Get("type") != "":
		entries, err = h.Transactions.FindByType(ctx, models.TransactionType(q.Get("type")))
	default:
		entries, err = h.Transactions.FindAll(ctx)
	}
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *TransactionHandler) record(w http.ResponseWriter, r *http.Request) {
	var in services.MovementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	entry, err := h.Service.Record(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientStock):
			httpx.JSONError(w, http.StatusConflict, "insufficient_stock", nil)
		case errors.Is(err, services.ErrUnknownItem):
			httpx.JSONError(w, http.StatusBadRequest, "unknown_item", nil)
		case errors.Is(err, repository.ErrConstraint), errors.Is(err, repository.ErrNotInitialized):
			httpx.RepoError(w, err)
		default:
			httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// History: GET /transactions/history?item_id=&limit= returns the most
// recent movements for one item.
func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var itemID uint
	if _, err := fmt.Sscanf(q.Get("item_id"), "%d", &itemID); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_item_id", nil)
		return
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_limit", nil)
			return
		}
		limit = n
	}
	entries, err := h.Transactions.ItemHistory(r.Context(), itemID, limit)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}
