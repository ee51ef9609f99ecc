// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"harborcms/internal/models"
	"harborcms/internal/slug"
)

// BoardStore manages community boards in the database.
type BoardStore struct {
	db *sql.DB
}

// NewBoardStore returns a new BoardStore.
func NewBoardStore(db *sql.DB) *BoardStore {
	return &BoardStore{db: db}
}

const boardColumns = `id, key, name, description, sort_order, is_visible, created_at, updated_at`

// scanBoard scans a row into a Board struct.
func scanBoard(scanner interface{ Scan(...any) error }) (*models.Board, error) {
	var b models.Board
	err := scanner.Scan(
		&b.ID, &b.Key, &b.Name, &b.Description,
		&b.SortOrder, &b.IsVisible, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// seedDefaultBoards inserts the default board set when the board table is
// completely empty. A non-empty table, even one missing the defaults, is
// left untouched.
func seedDefaultBoards(q querier) error {
	var count int
	if err := q.QueryRow(`SELECT COUNT(*) FROM boards`).Scan(&count); err != nil {
		return fmt.Errorf("seed default boards count: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, b := range models.DefaultBoards {
		_, err := q.Exec(`
			INSERT INTO boards (key, name, sort_order, is_visible)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (key) DO NOTHING`,
			b.Key, b.Name, b.Order,
		)
		if err != nil {
			return fmt.Errorf("seed board %q: %w", b.Key, err)
		}
	}
	slog.Info("default boards seeded", "count", len(models.DefaultBoards))
	return nil
}

// EnsureDefaults seeds the default boards inside a transaction. Safe to
// call repeatedly; called once at startup.
func (s *BoardStore) EnsureDefaults() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := seedDefaultBoards(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns boards ordered by sort_order. Hidden boards are excluded
// unless includeHidden is set.
func (s *BoardStore) List(includeHidden bool) ([]models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY sort_order, name`
	if !includeHidden {
		query = `SELECT ` + boardColumns + ` FROM boards WHERE is_visible ORDER BY sort_order, name`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var items []models.Board
	for rows.Next() {
		var b models.Board
		err := rows.Scan(
			&b.ID, &b.Key, &b.Name, &b.Description,
			&b.SortOrder, &b.IsVisible, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// FindByID retrieves a board by ID. Returns nil if not found.
func (s *BoardStore) FindByID(id uuid.UUID) (*models.Board, error) {
	row := s.db.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find board by id: %w", err)
	}
	return b, nil
}

// FindByKey retrieves a board by its exact key. Returns nil if not found.
func (s *BoardStore) FindByKey(key string) (*models.Board, error) {
	row := s.db.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE key = $1`, key)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find board by key: %w", err)
	}
	return b, nil
}

// NormalizeKey resolves a board key: an explicit key wins, otherwise the key
// is derived from the name. Either way the result is slugified.
func NormalizeKey(key, fallbackName string) string {
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		return slug.Generate(trimmed)
	}
	return slug.Generate(fallbackName)
}

// BoardInput carries the fields accepted when creating a board.
type BoardInput struct {
	Key         string
	Name        string
	Description *string
	SortOrder   *int
	IsVisible   *bool
}

// Create inserts a new board. The key is derived from the name when blank
// and must not collide with an existing board.
func (s *BoardStore) Create(in BoardInput) (*models.Board, error) {
	key := NormalizeKey(in.Key, in.Name)
	if key == "" {
		return nil, ErrMissingKey
	}

	existing, err := s.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateKey
	}

	order := 0
	if in.SortOrder != nil {
		order = *in.SortOrder
	} else {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM boards`).Scan(&count); err != nil {
			return nil, fmt.Errorf("create board count: %w", err)
		}
		order = count + 1
	}

	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}

	row := s.db.QueryRow(`
		INSERT INTO boards (key, name, description, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+boardColumns,
		key, in.Name, in.Description, order, visible,
	)
	b, err := scanBoard(row)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return b, nil
}

// BoardUpdate carries the fields accepted when updating a board. Nil fields
// keep their current value.
type BoardUpdate struct {
	Key         *string
	Name        *string
	Description *string
	IsVisible   *bool
}

// Update modifies a board. When the resolved key differs from the current
// one, every post tagged with the old key (case-insensitive) is retagged to
// the new key inside the same transaction as the rename.
func (s *BoardStore) Update(id uuid.UUID, in BoardUpdate) (*models.Board, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE id = $1 FOR UPDATE`, id)
	existing, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update board lookup: %w", err)
	}

	name := existing.Name
	if in.Name != nil {
		name = *in.Name
	}
	keyInput := existing.Key
	if in.Key != nil {
		keyInput = *in.Key
	}
	nextKey := NormalizeKey(keyInput, name)
	if nextKey == "" {
		return nil, ErrMissingKey
	}

	if nextKey != existing.Key {
		var dup bool
		err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM boards WHERE key = $1 AND id <> $2)`, nextKey, id).Scan(&dup)
		if err != nil {
			return nil, fmt.Errorf("update board duplicate check: %w", err)
		}
		if dup {
			return nil, ErrDuplicateKey
		}

		if _, err := tx.Exec(`UPDATE posts SET type = $1, updated_at = NOW() WHERE LOWER(type) = LOWER($2)`, nextKey, existing.Key); err != nil {
			return nil, fmt.Errorf("retag posts: %w", err)
		}
	}

	desc := existing.Description
	if in.Description != nil {
		desc = in.Description
	}
	visible := existing.IsVisible
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}

	row = tx.QueryRow(`
		UPDATE boards SET key = $1, name = $2, description = $3, is_visible = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+boardColumns,
		nextKey, name, desc, visible, id,
	)
	updated, err := scanBoard(row)
	if err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update board commit: %w", err)
	}
	return updated, nil
}

// Delete removes a board. It is blocked while any post still references the
// board key (case-insensitive); posts must be migrated or removed first.
func (s *BoardStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var key string
	err = tx.QueryRow(`SELECT key FROM boards WHERE id = $1 FOR UPDATE`, id).Scan(&key)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete board lookup: %w", err)
	}

	var posts int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE LOWER(type) = LOWER($1)`, key).Scan(&posts); err != nil {
		return fmt.Errorf("delete board post count: %w", err)
	}
	if posts > 0 {
		return ErrBoardHasPosts
	}

	if _, err := tx.Exec(`DELETE FROM boards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	return tx.Commit()
}

// ReorderItem represents a single entry in a reorder request.
type ReorderItem struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

// Reorder updates sort_order for multiple boards in one transaction; a
// failure on any entry rolls back the whole batch.
func (s *BoardStore) Reorder(items []ReorderItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE boards SET sort_order = $1, updated_at = $2 WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		if _, err := stmt.Exec(item.Order, now, item.ID); err != nil {
			return fmt.Errorf("reorder board %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}
