package handlers

import (
	"encoding/json"
	"net/http"

	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/validation"
)

type CustomerHandler struct {
	Customers *repository.CustomerRepository
}

func NewCustomerHandler(customers *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{Customers: customers}
}

// Collection: GET /customers, POST /customers.
func (h *CustomerHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		customers, err := h.Customers.FindAll(r.Context())
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, customers)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

// Resource: GET /customer?id=, PATCH /customer?id=, DELETE /customer?id=.
func (h *CustomerHandler) Resource(w http.ResponseWriter, r *http.Request) {
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

func validateCustomer(c *models.Customer) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	validation.MaxLength("name", c.Name, 255, v)
	validation.Email("email", c.Email, v)
	validation.Phone("phone", c.Phone, v)
	validation.ZipCode("zip_code", c.ZipCode, v)
	return v
}

func (h *CustomerHandler) create(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateCustomer(&customer); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	customer.ID = 0
	if _, err := h.Customers.Create(r.Context(), &customer); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	customer, err := h.Customers.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if customer == nil {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

var customerPatchFields = map[string]bool{
	"name": true, "email": true, "phone": true, "address": true,
	"city": true, "state": true, "zip_code": true,
}

func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request) {
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
		if customerPatchFields[k] {
			fields[k] = val
		}
	}
	if len(fields) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_update", nil)
		return
	}
	if err := h.Customers.Update(r.Context(), id, fields); err != nil {
		httpx.RepoError(w, err)
		return
	}
	customer, err := h.Customers.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if customer == nil {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Customers.Delete(r.Context(), id); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Search: GET /customers/search?q=...
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_query", nil)
		return
	}
	customers, err := h.Customers.Search(r.Context(), q)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}
