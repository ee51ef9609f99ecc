// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a catalog content category.
// A hidden category keeps its row (and reserves its slug) until it is
// permanently deleted through the admin API.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	SortOrder    int       `json:"order"`
	IsVisible    bool      `json:"isVisible"`
	RequiresAuth bool      `json:"requiresAuth"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// ContentCount is populated by list queries that join the contents table.
	ContentCount int `json:"contentCount"`
}
