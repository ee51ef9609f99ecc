// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"harborcms/internal/models"
	"harborcms/internal/store"
)

// menuRequest is the action-discriminated body accepted by the admin menu
// endpoint.
type menuRequest struct {
	Action  string              `json:"action"`
	MenuKey string              `json:"menuKey"`
	ID      string              `json:"id"`
	Data    store.MenuItemInput `json:"data"`
	Items   []store.ReorderItem `json:"items"`
}

// Menus handles GET /api/admin/menus?key=main, returning the resolved menu
// for the key.
func (a *Admin) Menus(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = models.MenuKeyMain
	}

	menu, err := a.menus.GetMenu(key)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

// MenuAction handles POST /api/admin/menus, dispatching on the action field.
// Unknown actions are rejected with 400 before any state is touched.
func (a *Admin) MenuAction(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Action {
	case "create":
		if req.MenuKey == "" || req.Data.Label == nil || strings.TrimSpace(*req.Data.Label) == "" {
			respondError(w, http.StatusBadRequest, "menuKey and label are required")
			return
		}
		item, err := a.menus.CreateItem(req.MenuKey, req.Data)
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusCreated, item)

	case "update":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		item, err := a.menus.UpdateItem(id, req.Data)
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusOK, item)

	case "delete":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		if storeError(w, a.menus.DeleteItem(id)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	case "reorder":
		if req.MenuKey == "" || req.Items == nil {
			respondError(w, http.StatusBadRequest, "menuKey and items are required")
			return
		}
		if storeError(w, a.menus.Reorder(req.MenuKey, req.Items)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		respondError(w, http.StatusBadRequest, "unsupported action")
	}
}
