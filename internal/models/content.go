// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the publication state of a catalog content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// Content is a catalog item owned by a category. Ownership is by category
// id, so renaming a category slug does not orphan its contents.
type Content struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Body         string        `json:"body"`
	CategoryID   *uuid.UUID    `json:"categoryId"`
	Status       ContentStatus `json:"status"`
	ThumbnailURL *string       `json:"thumbnailUrl"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
