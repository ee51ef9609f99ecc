// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkType says what a menu item points at.
type LinkType string

const (
	LinkTypeCategory  LinkType = "category"
	LinkTypeCommunity LinkType = "community"
)

// Path prefixes shared by the menu graph, the ACL resolver, and the edge
// gate. Category menu entries link to catalog listing pages, content detail
// pages live under ContentPathPrefix, and community pages under
// CommunityPath.
const (
	CategoryHrefPrefix = "/products/"
	ContentPathPrefix  = "/contents/"
	CommunityPath      = "/community"
)

// MenuKeyMain is the key of the menu that drives the primary navigation.
const MenuKeyMain = "main"

// Menu is a named collection of ordered menu items.
type Menu struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MenuItem is one ordered navigation entry. When LinkType is "category" the
// item owns a Category through LinkedCategoryID; when it is "community" the
// item owns the community group reachable through its href.
type MenuItem struct {
	ID               string     `json:"id"`
	MenuID           uuid.UUID  `json:"menuId"`
	Label            string     `json:"label"`
	Href             string     `json:"href"`
	SortOrder        int        `json:"order"`
	IsVisible        bool       `json:"isVisible"`
	IsExternal       bool       `json:"isExternal"`
	OpenInNew        bool       `json:"openInNew"`
	RequiresAuth     bool       `json:"requiresAuth"`
	BadgeText        *string    `json:"badgeText"`
	LinkType         LinkType   `json:"linkType"`
	LinkedCategoryID *uuid.UUID `json:"linkedId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ResolvedMenu is what getMenu returns: the menu header plus its visible
// items in display order. When nothing is persisted for a key the items are
// synthesized defaults and ID is the literal string "default".
type ResolvedMenu struct {
	ID    string     `json:"id"`
	Key   string     `json:"key"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// DefaultMainMenu is the hardcoded item set served when the main menu has no
// persisted items. It is synthesized at read time and never written back.
var DefaultMainMenu = []MenuItem{
	{Label: "카지노", Href: "/products/casino", SortOrder: 1, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "다낭 유흥", Href: "/products/nightlife", SortOrder: 2, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "프로모션", Href: "/products/promotion", SortOrder: 3, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "VIP 여행", Href: "/products/vip-trip", SortOrder: 4, RequiresAuth: true, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "여행 TIP", Href: "/products/tip", SortOrder: 5, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "호텔 & 풀빌라", Href: "/products/hotel-villa", SortOrder: 6, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "골프 & 레저", Href: "/products/golf", SortOrder: 7, LinkType: LinkTypeCategory, IsVisible: true},
	{Label: "커뮤니티", Href: CommunityPath, SortOrder: 8, LinkType: LinkTypeCommunity, IsVisible: true},
}
