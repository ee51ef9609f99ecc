// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"harborcms/internal/acl"
	"harborcms/internal/middleware"
)

// ACL serves the protected-slug snapshot consumed by the edge gate.
type ACL struct {
	resolver *acl.Resolver
}

// NewACL creates a new ACL handler.
func NewACL(resolver *acl.Resolver) *ACL {
	return &ACL{resolver: resolver}
}

// Get handles GET /api/acl. The endpoint is internal: requests without the
// gate's marker header get a 404, indistinguishable from a missing route.
// Both slug arrays in the response are always present, never null.
func (h *ACL) Get(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(middleware.MarkerHeader) != "1" {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	snapshot, err := h.resolver.Resolve()
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}
