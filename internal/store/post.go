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

// PostStore manages community posts in the database. Posts reference their
// board by key (the type column), matched case-insensitively.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, type, title, body, author_id, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Type, &p.Title, &p.Body, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByBoardKey returns posts on a board, newest first. Key matching is
// case-insensitive.
func (s *PostStore) ListByBoardKey(key string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE LOWER(type) = LOWER($1)
		ORDER BY created_at DESC`, key)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CountByBoardKey returns the number of posts on a board, matched
// case-insensitively.
func (s *PostStore) CountByBoardKey(key string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE LOWER(type) = LOWER($1)`, key).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Create inserts a new post on the board identified by key.
func (s *PostStore) Create(key, title, body string, authorID uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (type, title, body, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		key, title, body, authorID,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}
