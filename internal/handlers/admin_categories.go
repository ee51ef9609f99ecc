// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"harborcms/internal/models"
)

// categoryRequest is the action-discriminated body accepted by the admin
// category endpoint.
type categoryRequest struct {
	Action string              `json:"action"`
	ID     string              `json:"id"`
	Data   categoryMetaPatch   `json:"data"`
	// restore
	MenuKey string `json:"menuKey"`
	// moveContents
	FromCategoryID string `json:"fromCategoryId"`
	ToCategoryID   string `json:"toCategoryId"`
}

type categoryMetaPatch struct {
	ThumbnailURL *string `json:"thumbnailUrl"`
	Description  *string `json:"description"`
}

// Categories handles GET /api/admin/categories. The full set is returned in
// display order; ?hidden=true narrows to hidden categories only (the
// restore screen).
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("hidden") == "true" {
		items, err := a.categories.ListHidden()
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusOK, items)
		return
	}

	items, err := a.categories.List(true)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CategoryAction handles POST /api/admin/categories, dispatching on the
// action field.
func (a *Admin) CategoryAction(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Action {
	case "update":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		updated, err := a.categories.UpdateMeta(id, req.Data.ThumbnailURL, req.Data.Description)
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusOK, updated)

	case "restore":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		menuKey := req.MenuKey
		if menuKey == "" {
			menuKey = models.MenuKeyMain
		}
		if storeError(w, a.categories.Restore(id, menuKey)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	case "moveContents":
		from, ok := parseID(w, req.FromCategoryID)
		if !ok {
			return
		}
		to, ok := parseID(w, req.ToCategoryID)
		if !ok {
			return
		}
		moved, err := a.categories.MoveContents(from, to)
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "moved": moved})

	case "permanentDelete":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		if storeError(w, a.categories.PermanentlyDelete(id)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		respondError(w, http.StatusBadRequest, "unsupported action")
	}
}
