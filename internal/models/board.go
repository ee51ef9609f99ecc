// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Board represents a discussion board scoped under the community group.
// Posts reference a board by its key, matched case-insensitively.
type Board struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"order"`
	IsVisible   bool      `json:"isVisible"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultBoard describes one entry of the seed set inserted when the board
// table is empty.
type DefaultBoard struct {
	Key   string
	Name  string
	Order int
}

// DefaultBoards is the board set seeded exactly once, when no boards exist.
var DefaultBoards = []DefaultBoard{
	{Key: "review", Name: "후기", Order: 1},
	{Key: "free", Name: "자유게시판", Order: 2},
}
