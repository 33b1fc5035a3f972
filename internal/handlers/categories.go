package handlers

import (
	"encoding/json"
	"net/http"

	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/validation"
)

type CategoryHandler struct {
	Categories *repository.CategoryRepository
	Items      *repository.ItemRepository
}

func NewCategoryHandler(categories *repository.CategoryRepository, items *repository.ItemRepository) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Items: items}
}

// Collection: GET /categories, POST /categories.
func (h *CategoryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cats, err := h.Categories.FindAll(r.Context())
		if err != nil {
			httpx.RepoError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, cats)
	case http.MethodPost:
		h.create(w, r)
	default:
		httpx.MethodNotAllowed(w)
	}
}

// Resource: GET /category?id=, PATCH /category?id=, DELETE /category?id=.
func (h *CategoryHandler) Resource(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", cat.Name, v)
	validation.MaxLength("name", cat.Name, 100, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	cat.ID = 0
	if _, err := h.Categories.Create(r.Context(), &cat); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	cat, err := h.Categories.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if cat == nil {
		httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "empty_update", nil)
		return
	}
	if err := h.Categories.Update(r.Context(), id, fields); err != nil {
		httpx.RepoError(w, err)
		return
	}
	cat, err := h.Categories.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if cat == nil {
		httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

// delete refuses when items still reference the category. Repository
// deletes never cascade, so the check happens here.
func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	cat, err := h.Categories.FindByID(r.Context(), id)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if cat == nil {
		httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		return
	}
	n, err := h.Items.CountByCategory(r.Context(), cat.Name)
	if err != nil {
		httpx.RepoError(w, err)
		return
	}
	if n > 0 {
		httpx.JSONError(w, http.StatusConflict, "category_in_use", map[string]int64{"items": n})
		return
	}
	if err := h.Categories.Delete(r.Context(), id); err != nil {
		httpx.RepoError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
