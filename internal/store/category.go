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

// CategoryStore manages catalog categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, thumbnail_url, sort_order, is_visible, requires_auth, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ThumbnailURL,
		&c.SortOrder, &c.IsVisible, &c.RequiresAuth, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories ordered by sort_order, with content counts.
// Hidden categories are excluded unless includeHidden is set.
func (s *CategoryStore) List(includeHidden bool) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.thumbnail_url, c.sort_order,
		       c.is_visible, c.requires_auth, c.created_at, c.updated_at,
		       COUNT(ct.id) AS content_count
		FROM categories c
		LEFT JOIN contents ct ON ct.category_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.sort_order, c.name`
	where := `WHERE c.is_visible`
	if includeHidden {
		where = ``
	}

	rows, err := s.db.Query(fmt.Sprintf(query, where))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListHidden returns only hidden categories, with content counts. Feeds the
// admin "hidden categories" screen where restore / move / permanent delete
// are offered.
func (s *CategoryStore) ListHidden() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.description, c.thumbnail_url, c.sort_order,
		       c.is_visible, c.requires_auth, c.created_at, c.updated_at,
		       COUNT(ct.id) AS content_count
		FROM categories c
		LEFT JOIN contents ct ON ct.category_id = c.id
		WHERE NOT c.is_visible
		GROUP BY c.id
		ORDER BY c.sort_order, c.name`)
	if err != nil {
		return nil, fmt.Errorf("list hidden categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.ThumbnailURL,
			&c.SortOrder, &c.IsVisible, &c.RequiresAuth, &c.CreatedAt, &c.UpdatedAt,
			&c.ContentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// UpsertBySlug creates a category for slug if absent, otherwise updates its
// name and visibility. Sort order is only applied on insert; reordering is
// the menu graph's job afterwards.
func (s *CategoryStore) UpsertBySlug(slug, name string, order int, visible bool) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, sort_order, is_visible)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name, is_visible = EXCLUDED.is_visible, updated_at = NOW()
		RETURNING `+categoryColumns,
		name, slug, order, visible,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("upsert category: %w", err)
	}
	return c, nil
}

// Hide soft-deletes a category. Its slug stays reserved and its contents are
// untouched; only permanent deletion removes the row.
func (s *CategoryStore) Hide(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE categories SET is_visible = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hide category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMeta updates the presentational fields of a category. A nil pointer
// leaves the current value in place.
func (s *CategoryStore) UpdateMeta(id uuid.UUID, thumbnailURL, description *string) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET
			thumbnail_url = COALESCE($1, thumbnail_url),
			description = COALESCE($2, description),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+categoryColumns,
		thumbnailURL, description, id,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update category meta: %w", err)
	}
	return c, nil
}

// Restore makes a hidden category visible again and appends a matching
// category-type menu item at the end of the target menu, both inside one
// transaction. A visible category with no menu entry is never observable.
func (s *CategoryStore) Restore(id uuid.UUID, targetMenuKey string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("restore lookup: %w", err)
	}
	if c.IsVisible {
		return ErrAlreadyVisible
	}

	if _, err := tx.Exec(`UPDATE categories SET is_visible = TRUE, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("restore unhide: %w", err)
	}

	menuID, err := getOrCreateMenu(tx, targetMenuKey)
	if err != nil {
		return err
	}

	var next sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(sort_order) FROM menu_items WHERE menu_id = $1`, menuID).Scan(&next); err != nil {
		return fmt.Errorf("restore next order: %w", err)
	}
	order := 1
	if next.Valid {
		order = int(next.Int64) + 1
	}

	_, err = tx.Exec(`
		INSERT INTO menu_items (menu_id, label, href, sort_order, link_type, linked_category_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		menuID, c.Name, models.CategoryHrefPrefix+c.Slug, order, models.LinkTypeCategory, c.ID,
	)
	if err != nil {
		return fmt.Errorf("restore menu item: %w", err)
	}

	return tx.Commit()
}

// MoveContents reassigns every content row from one category to another and
// returns how many rows moved. The target must be a different, visible
// category.
func (s *CategoryStore) MoveContents(fromID, toID uuid.UUID) (int64, error) {
	if fromID == toID {
		return 0, ErrInvalidTarget
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var fromExists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, fromID).Scan(&fromExists); err != nil {
		return 0, fmt.Errorf("move contents source: %w", err)
	}
	if !fromExists {
		return 0, ErrNotFound
	}

	var targetVisible bool
	err = tx.QueryRow(`SELECT is_visible FROM categories WHERE id = $1`, toID).Scan(&targetVisible)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("move contents target: %w", err)
	}
	if !targetVisible {
		return 0, ErrInvalidTarget
	}

	res, err := tx.Exec(`UPDATE contents SET category_id = $1, updated_at = NOW() WHERE category_id = $2`, toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("move contents: %w", err)
	}
	moved, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("move contents commit: %w", err)
	}
	return moved, nil
}

// PermanentlyDelete removes a category row for good. The category must be
// hidden and own zero contents; callers move contents elsewhere first.
func (s *CategoryStore) PermanentlyDelete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var visible bool
	err = tx.QueryRow(`SELECT is_visible FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&visible)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("permanent delete lookup: %w", err)
	}
	if visible {
		return ErrCategoryVisible
	}

	var contents int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM contents WHERE category_id = $1`, id).Scan(&contents); err != nil {
		return fmt.Errorf("permanent delete count: %w", err)
	}
	if contents > 0 {
		return ErrHasContent
	}

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("permanent delete: %w", err)
	}

	return tx.Commit()
}

// ProtectedSlugs returns the slugs of categories whose own requires_auth
// flag is set, independent of any menu state.
func (s *CategoryStore) ProtectedSlugs() ([]string, error) {
	rows, err := s.db.Query(`SELECT slug FROM categories WHERE requires_auth`)
	if err != nil {
		return nil, fmt.Errorf("protected category slugs: %w", err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

// SlugsByIDs resolves category ids to their current slugs in one query.
// Unknown ids are silently skipped.
func (s *CategoryStore) SlugsByIDs(ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT slug FROM categories WHERE id = ANY($1::uuid[])`, uuidArray(ids))
	if err != nil {
		return nil, fmt.Errorf("category slugs by ids: %w", err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

// FilterExistingSlugs returns the subset of the given slugs that belong to
// an existing category row.
func (s *CategoryStore) FilterExistingSlugs(slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT slug FROM categories WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("filter category slugs: %w", err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan string: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
