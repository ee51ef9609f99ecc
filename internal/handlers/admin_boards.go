// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"harborcms/internal/store"
)

// boardRequest is the action-discriminated body accepted by the admin board
// endpoint.
type boardRequest struct {
	Action string              `json:"action"`
	ID     string              `json:"id"`
	Data   boardData           `json:"data"`
	Items  []store.ReorderItem `json:"items"`
}

type boardData struct {
	Key         *string `json:"key"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"order"`
	IsVisible   *bool   `json:"isVisible"`
}

// Boards handles GET /api/admin/boards, returning all boards including
// hidden ones.
func (a *Admin) Boards(w http.ResponseWriter, r *http.Request) {
	items, err := a.boards.List(true)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// BoardAction handles POST /api/admin/boards, dispatching on the action
// field.
func (a *Admin) BoardAction(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Action {
	case "create":
		name := ""
		if req.Data.Name != nil {
			name = strings.TrimSpace(*req.Data.Name)
		}
		if name == "" {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		key := ""
		if req.Data.Key != nil {
			key = *req.Data.Key
		}
		board, err := a.boards.Create(store.BoardInput{
			Key:         key,
			Name:        name,
			Description: req.Data.Description,
			SortOrder:   req.Data.SortOrder,
			IsVisible:   req.Data.IsVisible,
		})
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusCreated, board)

	case "update":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		board, err := a.boards.Update(id, store.BoardUpdate{
			Key:         req.Data.Key,
			Name:        req.Data.Name,
			Description: req.Data.Description,
			IsVisible:   req.Data.IsVisible,
		})
		if storeError(w, err) {
			return
		}
		respondJSON(w, http.StatusOK, board)

	case "delete":
		id, ok := parseID(w, req.ID)
		if !ok {
			return
		}
		if storeError(w, a.boards.Delete(id)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	case "reorder":
		if req.Items == nil {
			respondError(w, http.StatusBadRequest, "items are required")
			return
		}
		if storeError(w, a.boards.Reorder(req.Items)) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		respondError(w, http.StatusBadRequest, "unsupported action")
	}
}
