// Package handlers contains the HTTP handlers for the harborcms JSON API,
// grouped by audience: Admin for the admin surface, Public for site-facing
// reads, Auth for login and 2FA.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"harborcms/internal/store"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes the {error: string} shape used across the API.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON parses the request body into v; on failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// storeError maps store sentinel errors to the HTTP error taxonomy and
// writes the response. Returns true if an error was handled (caller should
// return). Unknown errors are logged and become an opaque 500.
func storeError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateKey):
		respondError(w, http.StatusConflict, "duplicate key or slug")
	case errors.Is(err, store.ErrMissingSlug):
		respondError(w, http.StatusBadRequest, "a category address is required")
	case errors.Is(err, store.ErrMissingKey):
		respondError(w, http.StatusBadRequest, "a board key is required")
	case errors.Is(err, store.ErrAlreadyVisible):
		respondError(w, http.StatusConflict, "category is already visible")
	case errors.Is(err, store.ErrCategoryVisible):
		respondError(w, http.StatusConflict, "category must be hidden first")
	case errors.Is(err, store.ErrHasContent):
		respondError(w, http.StatusConflict, "category still has contents")
	case errors.Is(err, store.ErrInvalidTarget):
		respondError(w, http.StatusBadRequest, "invalid target category")
	case errors.Is(err, store.ErrBoardHasPosts):
		respondError(w, http.StatusConflict, "board still has posts")
	default:
		slog.Error("store error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
