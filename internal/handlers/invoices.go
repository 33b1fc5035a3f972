package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/pdf"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/services"
	"stockpilot/backend/internal/validation"
)

type InvoiceHandler struct {
	Service   *services.InvoiceService
	Invoices  *repository.InvoiceRepository
	Items     *repository.ItemRepository
	Customers *repository.CustomerRepository
}

func NewInvoiceHandler(svc *services.InvoiceService, invoices *repository.InvoiceRepository, items *repository.ItemRepository, customers *repository.CustomerRepository) *InvoiceHandler {
	return &InvoiceHandler{Service: svc, Invoices: invoices, Items: items, Customers: customers}
}

// Collection: GET /invoices (optionally ?customer_id= or ?status=),
// POST /invoices (create through the service; drafts only).
func (h *InvoiceHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

func (h *InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		invoices []models.Invoice
		err      error
	)
	switch {
	case q.Get("customer_id") != "":
		var id uint
		if _, serr := fmt.Sscanf(q.Get("customer_id"), "%d", &id); serr != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_customer_id", nil)
			return
		}
		invoices, err = h.Invoices.FindByCustomer(ctx, id)
	case q.Get("status") != "":
		invoices, err = h.Invoices.FindByStatus(ctx, models.InvoiceStatus(q.Get("status")))
	default:
		invoices, err = h.Invoices.FindAll(ctx)
	}
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

// invoiceRequest is the create payload. Date is the calendar day from
// the entry form; empty means today.
type invoiceRequest struct {
	CustomerID uint                   `json:"customer_id"`
	Date       string                 `json:"date"`
	TaxRate    *float64               `json:"tax_rate"`
	Notes      string                 `json:"notes"`
	Items      []services.LineRequest `json:"items"`
}

func (h *InvoiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Date("date", req.Date, v)
	for _, l := range req.Items {
		if l.UnitPrice != 0 {
			validation.PositiveFloat("unit_price", l.UnitPrice, v)
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	in := services.CreateInput{
		CustomerID: req.CustomerID,
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
		Lines:      req.Items,
	}
	if req.Date != "" {
		in.Date, _ = time.Parse("2006-01-02", req.Date)
	}
	created, err := h.Service.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyInvoice),
			errors.Is(err, services.ErrUnknownItem),
			errors.Is(err, services.ErrNoSuchCustomer):
			httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		default:
			httpx.RepoError(w, err)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Resource: GET /invoice?id= (or ?number=) returns the invoice with
// its line items. DELETE /invoice?id= removes the header row only.
func (h *InvoiceHandler) Resource(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

func (h *InvoiceHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if number := r.URL.Query().Get("number"); number != "" {
		v := validation.Violations{}
		validation.InvoiceNumber("number", number, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		header, err := h.Invoices.FindByNumber(ctx, number)
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		if header == nil {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		inv, err := h.Invoices.GetWithItems(ctx, header.ID)
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, inv)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	inv, err := h.Invoices.GetWithItems(ctx, id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if inv == nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Invoices.Delete(r.Context(), id); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateStatus: POST /invoice/status?id= with {"status":"paid"}.
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPatch {
		httpx.MethodNotAllowed(w)
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Status models.InvoiceStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// NextNumber: GET /invoices/next-number previews the number the next
// invoice would receive.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.Invoices.NextInvoiceNumber(r.Context())
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoice_number": number})
}

// PDF: GET /invoice/pdf?id= renders and streams the invoice document.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	inv, err := h.Invoices.GetWithItems(ctx, id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if inv == nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	customer, err := h.Customers.FindByID(ctx, inv.Invoice.CustomerID)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	names := make(map[uint]string, len(inv.Items))
	for _, li := range inv.Items {
		item, err := h.Items.FindByID(ctx, li.ItemID)
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		if item != nil {
			names[li.ItemID] = item.Name
		}
	}
	data := pdf.Data{Invoice: inv.Invoice, Items: inv.Items, ItemNames: names}
	if customer != nil {
		data.Customer = *customer
	}
	doc, err := pdf.Render(data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.Invoice.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
