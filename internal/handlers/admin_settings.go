// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "net/http"

// Settings handles GET /api/admin/settings, returning every site setting.
func (a *Admin) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All()
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles POST /api/admin/settings, upserting the submitted
// key/value pairs in one transaction.
func (a *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req) == 0 {
		respondError(w, http.StatusBadRequest, "no settings submitted")
		return
	}

	if storeError(w, a.settings.SetMany(req)) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
