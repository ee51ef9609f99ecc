package models

import (
	"strings"
	"testing"
)

// TestDefaultMainMenu pins down the invariants of the fallback navigation:
// every item is visible, category items point under the catalog prefix, and
// the community entry is last.
func TestDefaultMainMenu(t *testing.T) {
	if len(DefaultMainMenu) == 0 {
		t.Fatal("DefaultMainMenu is empty")
	}

	seenAuth := false
	for i, item := range DefaultMainMenu {
		if !item.IsVisible {
			t.Errorf("default item %q is not visible", item.Label)
		}
		if item.SortOrder != i+1 {
			t.Errorf("default item %q has order %d, want %d", item.Label, item.SortOrder, i+1)
		}
		switch item.LinkType {
		case LinkTypeCategory:
			if !strings.HasPrefix(item.Href, CategoryHrefPrefix) {
				t.Errorf("category item %q href %q lacks prefix %q", item.Label, item.Href, CategoryHrefPrefix)
			}
		case LinkTypeCommunity:
			if item.Href != CommunityPath {
				t.Errorf("community item %q href = %q, want %q", item.Label, item.Href, CommunityPath)
			}
		default:
			t.Errorf("default item %q has unexpected link type %q", item.Label, item.LinkType)
		}
		if item.RequiresAuth {
			seenAuth = true
		}
	}

	if !seenAuth {
		t.Error("expected at least one default item to require auth")
	}
	if last := DefaultMainMenu[len(DefaultMainMenu)-1]; last.LinkType != LinkTypeCommunity {
		t.Errorf("last default item is %q, want the community entry", last.Label)
	}
}

func TestDefaultBoards(t *testing.T) {
	if len(DefaultBoards) != 2 {
		t.Fatalf("DefaultBoards has %d entries, want 2", len(DefaultBoards))
	}
	keys := map[string]bool{}
	for _, b := range DefaultBoards {
		if b.Key == "" || b.Name == "" {
			t.Errorf("default board %+v has empty key or name", b)
		}
		if keys[b.Key] {
			t.Errorf("duplicate default board key %q", b.Key)
		}
		keys[b.Key] = true
	}
	if !keys["review"] || !keys["free"] {
		t.Errorf("default boards missing review/free: %v", keys)
	}
}
