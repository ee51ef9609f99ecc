// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package acl derives the set of protected slugs from menu and category
// state. The resolver is a pure function of store state; callers that need
// caching wrap it themselves.
package acl

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"harborcms/internal/models"
	"harborcms/internal/store"
)

// MenuSource is the slice of MenuStore the resolver needs.
type MenuSource interface {
	ProtectedItems() ([]models.MenuItem, error)
}

// CategorySource is the slice of CategoryStore the resolver needs.
type CategorySource interface {
	ProtectedSlugs() ([]string, error)
	SlugsByIDs(ids []uuid.UUID) ([]string, error)
	FilterExistingSlugs(slugs []string) ([]string, error)
}

// ProtectedSlugs is the resolver's result: the category and community group
// slugs that require an authenticated session. Both slices are sorted,
// deduplicated, and never nil.
type ProtectedSlugs struct {
	CategorySlugs  []string `json:"protectedCategorySlugs"`
	CommunitySlugs []string `json:"protectedCommunitySlugs"`
}

// Contains reports whether slug is in the category set.
func (p ProtectedSlugs) Contains(slug string) bool {
	return containsSorted(p.CategorySlugs, slug)
}

// ContainsCommunity reports whether slug is in the community set.
func (p ProtectedSlugs) ContainsCommunity(slug string) bool {
	return containsSorted(p.CommunitySlugs, slug)
}

func containsSorted(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}

// Resolver computes the protected slug sets.
type Resolver struct {
	menus      MenuSource
	categories CategorySource
}

// NewResolver returns a Resolver over the given sources.
func NewResolver(menus MenuSource, categories CategorySource) *Resolver {
	return &Resolver{menus: menus, categories: categories}
}

// Resolve computes the protected slug sets from current state:
//
//  1. Menu items flagged requires-auth with a category or community link.
//  2. Categories flagged requires-auth directly, independent of menu state.
//  3. Community items contribute their group slug, parsed from the href or
//     derived from the label.
//  4. Category items contribute their linked category id and an
//     href-derived slug candidate; a stale href that still names a real
//     category keeps protecting it.
//  5. Linked ids resolve to current slugs in one batch; href-derived
//     candidates are kept only when a category with that slug exists.
//  6. Everything is unioned into two deduplicated sets.
//
// Zero protected rows yields two empty sets, not an error.
func (r *Resolver) Resolve() (ProtectedSlugs, error) {
	result := ProtectedSlugs{
		CategorySlugs:  []string{},
		CommunitySlugs: []string{},
	}

	items, err := r.menus.ProtectedItems()
	if err != nil {
		return result, fmt.Errorf("resolve protected menu items: %w", err)
	}

	categorySet := map[string]struct{}{}
	communitySet := map[string]struct{}{}

	flagged, err := r.categories.ProtectedSlugs()
	if err != nil {
		return result, fmt.Errorf("resolve flagged categories: %w", err)
	}
	for _, s := range flagged {
		categorySet[s] = struct{}{}
	}

	var (
		linkedIDs  []uuid.UUID
		candidates []string
	)
	for _, item := range items {
		switch item.LinkType {
		case models.LinkTypeCommunity:
			if s := store.ExtractCommunitySlug(item.Href, item.Label); s != "" {
				communitySet[s] = struct{}{}
			}
		case models.LinkTypeCategory:
			if item.LinkedCategoryID != nil {
				linkedIDs = append(linkedIDs, *item.LinkedCategoryID)
			}
			if s := store.ResolveCategorySlug(item.Href, item.Label); s != "" {
				candidates = append(candidates, s)
			}
		}
	}

	if len(linkedIDs) > 0 {
		slugs, err := r.categories.SlugsByIDs(linkedIDs)
		if err != nil {
			return result, fmt.Errorf("resolve linked category slugs: %w", err)
		}
		for _, s := range slugs {
			categorySet[s] = struct{}{}
		}
	}

	if len(candidates) > 0 {
		existing, err := r.categories.FilterExistingSlugs(candidates)
		if err != nil {
			return result, fmt.Errorf("resolve candidate slugs: %w", err)
		}
		for _, s := range existing {
			categorySet[s] = struct{}{}
		}
	}

	result.CategorySlugs = sortedKeys(categorySet)
	result.CommunitySlugs = sortedKeys(communitySet)
	return result, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
