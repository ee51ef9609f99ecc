// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"harborcms/internal/store"
)

// Admin groups the admin JSON API handlers. The router mounts these behind
// the admin-role middleware, so the role check always precedes request
// validation.
type Admin struct {
	categories *store.CategoryStore
	boards     *store.BoardStore
	menus      *store.MenuStore
	settings   *store.SiteSettingStore
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(categories *store.CategoryStore, boards *store.BoardStore, menus *store.MenuStore, settings *store.SiteSettingStore) *Admin {
	return &Admin{
		categories: categories,
		boards:     boards,
		menus:      menus,
		settings:   settings,
	}
}

// parseID parses a required uuid field; on failure it writes a 400 and
// returns false.
func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		respondError(w, http.StatusBadRequest, "id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
