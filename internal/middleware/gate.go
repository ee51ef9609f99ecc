// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"harborcms/internal/acl"
	"harborcms/internal/cache"
	"harborcms/internal/models"
)

// MarkerHeader gates the ACL read endpoint so only the edge gate calls it.
const MarkerHeader = "x-middleware-request"

// GateConfig configures the edge gate.
type GateConfig struct {
	// ACLURL is the absolute URL of the ACL read endpoint.
	ACLURL string

	// Client is the HTTP client used to fetch the ACL snapshot. Defaults to
	// a client with a 3 second timeout.
	Client *http.Client

	// TTL bounds the staleness of the cached ACL snapshot. Defaults to 60s.
	TTL time.Duration

	// Now is the clock used for cache expiry. Defaults to time.Now.
	Now func() time.Time
}

// Gate blocks anonymous requests to protected content and community pages.
// It runs after LoadSession: authenticated requests always pass. For
// anonymous requests it consults the ACL endpoint (cached up to one TTL)
// and redirects to the login page when the requested slug is protected.
//
// On any ACL fetch or decode failure the gate FAILS OPEN and lets the
// request through: availability is preferred over strictness here because
// the page handlers re-derive the access decision themselves.
type Gate struct {
	aclURL string
	client *http.Client
	cached *cache.TTL[acl.ProtectedSlugs]
}

// NewGate returns a Gate with the given configuration.
func NewGate(cfg GateConfig) *Gate {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Gate{
		aclURL: cfg.ACLURL,
		client: client,
		cached: cache.NewTTL[acl.ProtectedSlugs](ttl, cfg.Now),
	}
}

// Middleware is the http.Handler wrapper form of the gate.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, slug := classify(r.URL.Path)
		if kind == routeOther {
			next.ServeHTTP(w, r)
			return
		}

		if SessionFromCtx(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		protected := g.protected()
		blocked := false
		switch kind {
		case routeContent:
			blocked = protected.Contains(slug)
		case routeCommunity:
			blocked = protected.ContainsCommunity(slug)
		}
		if !blocked {
			next.ServeHTTP(w, r)
			return
		}

		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(target), http.StatusFound)
	})
}

type routeKind int

const (
	routeOther routeKind = iota
	routeContent
	routeCommunity
)

// classify decides whether a path is subject to gating and extracts the
// slug being requested. API routes, framework internals, static-looking
// paths, and the auth pages are never gated.
func classify(path string) (routeKind, string) {
	switch {
	case strings.HasPrefix(path, "/api/"),
		strings.HasPrefix(path, "/_next/"),
		strings.Contains(path, "."),
		path == "/login", path == "/register", path == "/setup":
		return routeOther, ""
	}

	if slug := firstSegmentAfter(path, models.ContentPathPrefix); slug != "" {
		return routeContent, slug
	}
	if slug := firstSegmentAfter(path, models.CommunityPath+"/"); slug != "" {
		return routeCommunity, slug
	}
	return routeOther, ""
}

// firstSegmentAfter returns the first path segment following prefix, or ""
// when the path does not start with prefix.
func firstSegmentAfter(path, prefix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// protected returns the current protected slug sets, fetching from the ACL
// endpoint when the cached snapshot has expired. Failures are logged and
// yield empty sets without poisoning the cache.
func (g *Gate) protected() acl.ProtectedSlugs {
	if snapshot, ok := g.cached.Get(); ok {
		return snapshot
	}

	snapshot, err := g.fetch()
	if err != nil {
		slog.Warn("acl fetch failed, gate failing open", "error", err)
		return acl.ProtectedSlugs{CategorySlugs: []string{}, CommunitySlugs: []string{}}
	}

	g.cached.Set(snapshot)
	return snapshot
}

func (g *Gate) fetch() (acl.ProtectedSlugs, error) {
	var snapshot acl.ProtectedSlugs

	req, err := http.NewRequest(http.MethodGet, g.aclURL, nil)
	if err != nil {
		return snapshot, err
	}
	req.Header.Set(MarkerHeader, "1")

	resp, err := g.client.Do(req)
	if err != nil {
		return snapshot, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return snapshot, fmt.Errorf("acl endpoint returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, err
	}
	return snapshot, nil
}
