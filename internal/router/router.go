// Package router sets up all HTTP routes and middleware chains for the
// harborcms server. It organizes routes into public, auth, and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborcms/internal/handlers"
	"harborcms/internal/middleware"
	"harborcms/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The edge gate runs after session loading so
// authenticated requests pass without an ACL lookup.
func New(sessionStore *session.Store, gate *middleware.Gate, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, aclHandler *handlers.ACL) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(gate.Middleware)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Every mutation under /api must echo the CSRF token header. The
		// gate's internal ACL fetch is a GET, so it is unaffected.
		r.Use(middleware.CSRF)

		// Internal: only the edge gate may call this (marker header).
		r.Get("/acl", aclHandler.Get)

		// Public reads.
		r.Get("/menus", public.Menu)
		r.Get("/menus/{key}", public.Menu)
		r.Get("/categories", public.Categories)
		r.Get("/categories/{slug}/contents", public.CategoryContents)
		r.Get("/boards", public.Boards)
		r.Get("/community/{key}/posts", public.CommunityPosts)
		r.Get("/site", public.Site)

		// Authenticated writes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/community/{key}/posts", public.CreatePost)
		})

		// Auth endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
			r.Post("/register", auth.Register)
			r.Get("/me", auth.Me)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Admin surface — the role check wraps every admin route, so a
		// non-admin caller always sees 403 before any request validation.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/menus", admin.Menus)
			r.Post("/menus", admin.MenuAction)
			r.Get("/categories", admin.Categories)
			r.Post("/categories", admin.CategoryAction)
			r.Get("/boards", admin.Boards)
			r.Post("/boards", admin.BoardAction)
			r.Get("/settings", admin.Settings)
			r.Post("/settings", admin.UpdateSettings)
		})
	})

	// Page-data routes subject to the edge gate. These mirror the /api reads
	// but live on the gated path prefixes; the handlers re-derive the access
	// decision themselves, so a fail-open gate never leaks protected data.
	r.Get("/contents/{slug}", public.CategoryContents)
	r.Get("/community/{key}", public.CommunityPosts)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
