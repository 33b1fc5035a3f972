package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stockpilot/backend/internal/auth"
	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/validation"
)

type AuthHandler struct {
	Manager *auth.Manager
	Users   *repository.UserRepository
}

func NewAuthHandler(m *auth.Manager, users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{Manager: m, Users: users}
}

// Login: POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required", "password": "required"})
		return
	}
	resp, err := h.Manager.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// ChangePassword: POST /profile/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.MinLength("new_password", req.New, 6, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.Users.Authenticate(r.Context(), actor.Email, req.Current)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "password_change_failed", nil)
		return
	}
	if user == nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	hash, err := repository.HashPassword(req.New)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "password_change_failed", nil)
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "password_change_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

// Deactivate: POST /users/deactivate?id=... (admin only; enforced in
// the router). The row stays in place with is_active=false.
func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Users.Deactivate(r.Context(), id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "deactivate_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
