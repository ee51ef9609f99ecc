// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"harborcms/internal/models"
)

// ContentStore manages catalog content entries in the database.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore returns a new ContentStore.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, title, slug, body, status, category_id, thumbnail_url, created_at, updated_at`

// scanContent scans a row into a Content struct.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Body, &c.Status,
		&c.CategoryID, &c.ThumbnailURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByCategory returns published contents in a category, newest first.
func (s *ContentStore) ListByCategory(categoryID uuid.UUID) ([]models.Content, error) {
	rows, err := s.db.Query(`
		SELECT `+contentColumns+` FROM contents
		WHERE category_id = $1 AND status = 'published'
		ORDER BY created_at DESC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a content entry by slug. Returns nil if not found.
func (s *ContentStore) FindBySlug(contentSlug string) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM contents WHERE slug = $1`, contentSlug)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// CountByCategory returns the number of contents in a category, regardless
// of status.
func (s *ContentStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contents WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contents: %w", err)
	}
	return count, nil
}

// ContentInput carries the fields accepted when creating a content entry.
type ContentInput struct {
	Title        string
	Slug         string
	Body         string
	Status       models.ContentStatus
	CategoryID   *uuid.UUID
	ThumbnailURL *string
}

// Create inserts a new content entry.
func (s *ContentStore) Create(in ContentInput) (*models.Content, error) {
	if in.Slug == "" {
		return nil, ErrMissingSlug
	}
	status := in.Status
	if status == "" {
		status = models.ContentStatusDraft
	}

	row := s.db.QueryRow(`
		INSERT INTO contents (title, slug, body, status, category_id, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contentColumns,
		in.Title, in.Slug, in.Body, status, in.CategoryID, in.ThumbnailURL,
	)
	c, err := scanContent(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return c, nil
}
