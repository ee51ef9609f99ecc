// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"harborcms/internal/acl"
	"harborcms/internal/middleware"
	"harborcms/internal/models"
	"harborcms/internal/store"
)

// Public groups the site-facing read handlers. Protected categories and
// community groups re-derive the access decision here instead of trusting
// the edge gate: the gate fails open, this layer does not.
type Public struct {
	menus      *store.MenuStore
	categories *store.CategoryStore
	boards     *store.BoardStore
	contents   *store.ContentStore
	posts      *store.PostStore
	settings   *store.SiteSettingStore
	resolver   *acl.Resolver
}

// NewPublic creates a new Public handler group.
func NewPublic(menus *store.MenuStore, categories *store.CategoryStore, boards *store.BoardStore, contents *store.ContentStore, posts *store.PostStore, settings *store.SiteSettingStore, resolver *acl.Resolver) *Public {
	return &Public{
		menus:      menus,
		categories: categories,
		boards:     boards,
		contents:   contents,
		posts:      posts,
		settings:   settings,
		resolver:   resolver,
	}
}

// Menu handles GET /api/menus/{key} and GET /api/menus?key=main, returning
// the visible items of the requested menu, or the synthesized default when
// nothing is persisted.
func (h *Public) Menu(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		key = r.URL.Query().Get("key")
	}
	if key == "" {
		key = models.MenuKeyMain
	}

	menu, err := h.menus.GetMenu(key)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, menu)
}

// Categories handles GET /api/categories: visible categories with content
// counts, in display order. ?all=true includes hidden categories and is
// admin-only.
func (h *Public) Categories(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("all") == "true"
	if includeHidden {
		sess := middleware.SessionFromCtx(r.Context())
		if sess == nil || sess.Role != "admin" {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}
	}

	items, err := h.categories.List(includeHidden)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Boards handles GET /api/boards, returning visible boards in display order.
func (h *Public) Boards(w http.ResponseWriter, r *http.Request) {
	items, err := h.boards.List(false)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CategoryContents handles GET /api/categories/{slug}/contents. A category
// marked requires-auth, directly or through a protecting menu item, demands
// a session regardless of what the gate decided.
func (h *Public) CategoryContents(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := h.categories.FindBySlug(slug)
	if storeError(w, err) {
		return
	}
	if category == nil || !category.IsVisible {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	protected := category.RequiresAuth
	if !protected {
		protected, err = h.menus.CategoryRequiresAuth(&category.ID, category.Slug)
		if storeError(w, err) {
			return
		}
	}
	if protected && middleware.SessionFromCtx(r.Context()) == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.contents.ListByCategory(category.ID)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"contents": items,
	})
}

// CommunityPosts handles GET /api/community/{key}/posts. Protected
// community groups demand a session, re-derived from the resolver rather
// than inherited from the gate.
func (h *Public) CommunityPosts(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	board, err := h.boards.FindByKey(key)
	if storeError(w, err) {
		return
	}
	if board == nil || !board.IsVisible {
		respondError(w, http.StatusNotFound, "board not found")
		return
	}

	snapshot, err := h.resolver.Resolve()
	if storeError(w, err) {
		return
	}
	if snapshot.ContainsCommunity(board.Key) && middleware.SessionFromCtx(r.Context()) == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.posts.ListByBoardKey(board.Key)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"board": board,
		"posts": items,
	})
}

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost handles POST /api/community/{key}/posts. Mounted behind the
// auth middleware; the author is taken from the session.
func (h *Public) CreatePost(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	board, err := h.boards.FindByKey(chi.URLParam(r, "key"))
	if storeError(w, err) {
		return
	}
	if board == nil || !board.IsVisible {
		respondError(w, http.StatusNotFound, "board not found")
		return
	}

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	post, err := h.posts.Create(board.Key, req.Title, req.Body, sess.UserID)
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Site handles GET /api/site, returning the public site settings used to
// render the shell (name, logo, theme, footer).
func (h *Public) Site(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All()
	if storeError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
