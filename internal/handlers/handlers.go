// Package handlers exposes the HTTP surface over the repositories and
// services. Every handler speaks JSON; errors use the shared envelope
// from httpx.
package handlers

import (
	"net/http"
	"strconv"

	"stockpilot/backend/internal/httpx"
)

// idParam reads a required numeric "id" query parameter. On failure it
// writes the error response and returns ok=false.
func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
