package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"harborcms/internal/acl"
	"harborcms/internal/middleware"
	"harborcms/internal/models"
)

type stubMenus struct {
	items []models.MenuItem
}

func (s *stubMenus) ProtectedItems() ([]models.MenuItem, error) { return s.items, nil }

type stubCategories struct {
	flagged []string
}

func (s *stubCategories) ProtectedSlugs() ([]string, error) { return s.flagged, nil }

func (s *stubCategories) SlugsByIDs(ids []uuid.UUID) ([]string, error) { return nil, nil }

func (s *stubCategories) FilterExistingSlugs(slugs []string) ([]string, error) { return slugs, nil }

func TestACLRequiresMarkerHeader(t *testing.T) {
	h := NewACL(acl.NewResolver(&stubMenus{}, &stubCategories{}))

	req := httptest.NewRequest(http.MethodGet, "/api/acl", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status without marker = %d, want 404", rec.Code)
	}
}

func TestACLReturnsNonNilArrays(t *testing.T) {
	h := NewACL(acl.NewResolver(&stubMenus{}, &stubCategories{}))

	req := httptest.NewRequest(http.MethodGet, "/api/acl", nil)
	req.Header.Set(middleware.MarkerHeader, "1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	for _, field := range []string{"protectedCategorySlugs", "protectedCommunitySlugs"} {
		raw, ok := body[field]
		if !ok {
			t.Errorf("response missing %q", field)
			continue
		}
		if string(raw) == "null" {
			t.Errorf("%q is null, want an array", field)
		}
	}
}

func TestACLIncludesProtectedSlugs(t *testing.T) {
	menus := &stubMenus{items: []models.MenuItem{
		{LinkType: models.LinkTypeCommunity, Href: "/community/review", RequiresAuth: true},
	}}
	h := NewACL(acl.NewResolver(menus, &stubCategories{flagged: []string{"vip-trip"}}))

	req := httptest.NewRequest(http.MethodGet, "/api/acl", nil)
	req.Header.Set(middleware.MarkerHeader, "1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var got acl.ProtectedSlugs
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !got.Contains("vip-trip") {
		t.Errorf("category set %v missing vip-trip", got.CategorySlugs)
	}
	if !got.ContainsCommunity("review") {
		t.Errorf("community set %v missing review", got.CommunitySlugs)
	}
}
