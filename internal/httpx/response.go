// Package httpx holds the JSON response envelope shared by every
// handler, including the mapping from repository errors onto HTTP
// statuses.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockpilot/backend/internal/repository"
)

// ErrorResponse is the envelope for every non-2xx body. Details
// carries field violations on validation failures and is omitted
// otherwise.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// RepoError translates the repository error taxonomy: constraint
// violations are client conflicts, an uninitialized store means the
// service is not ready, anything else is internal.
func RepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrConstraint):
		JSONError(w, http.StatusConflict, "constraint_violation", nil)
	case errors.Is(err, repository.ErrNotInitialized):
		JSONError(w, http.StatusServiceUnavailable, "store_not_ready", nil)
	default:
		JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func MethodNotAllowed(w http.ResponseWriter) {
	JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}
