package store

import (
	"testing"

	"harborcms/internal/models"
)

func TestResolveLinkType(t *testing.T) {
	tests := []struct {
		name  string
		value string
		href  string
		want  models.LinkType
	}{
		{"explicit community wins", "community", "/products/casino", models.LinkTypeCommunity},
		{"explicit category wins", "category", "/community/review", models.LinkTypeCategory},
		{"community href implies community", "", "/community", models.LinkTypeCommunity},
		{"community subpath implies community", "", "/community/review", models.LinkTypeCommunity},
		{"product href implies category", "", "/products/casino", models.LinkTypeCategory},
		{"empty defaults to category", "", "", models.LinkTypeCategory},
		{"unknown value falls back to href", "external", "/community/x", models.LinkTypeCommunity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLinkType(tt.value, tt.href); got != tt.want {
				t.Errorf("ResolveLinkType(%q, %q) = %q, want %q", tt.value, tt.href, got, tt.want)
			}
		})
	}
}

func TestResolveCategorySlug(t *testing.T) {
	tests := []struct {
		name  string
		href  string
		label string
		want  string
	}{
		{"catalog href", "/products/casino", "whatever", "casino"},
		{"content href", "/contents/vip-trip", "", "vip-trip"},
		{"bare path strips leading slashes", "/casino", "", "casino"},
		{"label fallback is slugified", "", "VIP 여행", "vip-여행"},
		{"nothing resolvable", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCategorySlug(tt.href, tt.label); got != tt.want {
				t.Errorf("ResolveCategorySlug(%q, %q) = %q, want %q", tt.href, tt.label, got, tt.want)
			}
		})
	}
}

func TestExtractCommunitySlug(t *testing.T) {
	tests := []struct {
		name  string
		href  string
		label string
		want  string
	}{
		{"group in href", "/community/review", "x", "review"},
		{"nested path keeps first segment", "/community/review/42", "x", "review"},
		{"bare community falls back to label", "/community", "자유게시판", "자유게시판"},
		{"non-community href falls back to label", "/products/casino", "Review Board", "review-board"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCommunitySlug(tt.href, tt.label); got != tt.want {
				t.Errorf("ExtractCommunitySlug(%q, %q) = %q, want %q", tt.href, tt.label, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		fallback string
		want     string
	}{
		{"explicit key slugified", "Notice Board", "ignored", "notice-board"},
		{"blank key uses name", "  ", "자유게시판", "자유게시판"},
		{"both blank", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.key, tt.fallback); got != tt.want {
				t.Errorf("NormalizeKey(%q, %q) = %q, want %q", tt.key, tt.fallback, got, tt.want)
			}
		})
	}
}
