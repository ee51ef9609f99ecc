// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"harborcms/internal/models"
	"harborcms/internal/slug"
)

// MenuStore manages menus and their ordered items, including the coupling
// between category-type items and the categories they own.
type MenuStore struct {
	db *sql.DB
}

// NewMenuStore returns a new MenuStore.
func NewMenuStore(db *sql.DB) *MenuStore {
	return &MenuStore{db: db}
}

const menuItemColumns = `id, menu_id, label, href, sort_order, is_visible, is_external, open_in_new, requires_auth, badge_text, link_type, linked_category_id, created_at, updated_at`

// scanMenuItem scans a row into a MenuItem struct.
func scanMenuItem(scanner interface{ Scan(...any) error }) (*models.MenuItem, error) {
	var (
		m  models.MenuItem
		id uuid.UUID
	)
	err := scanner.Scan(
		&id, &m.MenuID, &m.Label, &m.Href, &m.SortOrder, &m.IsVisible,
		&m.IsExternal, &m.OpenInNew, &m.RequiresAuth, &m.BadgeText,
		&m.LinkType, &m.LinkedCategoryID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ID = id.String()
	return &m, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// getOrCreateMenu returns the id of the menu with the given key, creating
// the menu row on first use.
func getOrCreateMenu(q querier, key string) (uuid.UUID, error) {
	name := "Main"
	if key == "footer" {
		name = "Footer"
	}

	var id uuid.UUID
	err := q.QueryRow(`SELECT id FROM menus WHERE key = $1`, key).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("find menu: %w", err)
	}

	err = q.QueryRow(`INSERT INTO menus (key, name) VALUES ($1, $2) RETURNING id`, key, name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create menu: %w", err)
	}
	return id, nil
}

// ResolveLinkType picks the link type for a menu item: an explicit value
// wins, otherwise a community href implies community, and everything else
// is a category link.
func ResolveLinkType(value string, href string) models.LinkType {
	switch models.LinkType(value) {
	case models.LinkTypeCommunity:
		return models.LinkTypeCommunity
	case models.LinkTypeCategory:
		return models.LinkTypeCategory
	}
	if strings.HasPrefix(href, models.CommunityPath) {
		return models.LinkTypeCommunity
	}
	return models.LinkTypeCategory
}

// ResolveCategorySlug extracts the category slug for a category-type menu
// item: from a catalog or content href when present, otherwise from the
// label via the slug normalizer. Empty means no slug could be resolved.
func ResolveCategorySlug(href, label string) string {
	if strings.HasPrefix(href, models.CategoryHrefPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(href, models.CategoryHrefPrefix))
	}
	if strings.HasPrefix(href, models.ContentPathPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(href, models.ContentPathPrefix))
	}
	if href != "" {
		return strings.TrimSpace(strings.TrimLeft(href, "/"))
	}
	if label != "" {
		return slug.Generate(label)
	}
	return ""
}

// ExtractCommunitySlug derives the community group slug for a menu item:
// the first path segment after the community prefix, or a slug generated
// from the label when the href carries no group.
func ExtractCommunitySlug(href, label string) string {
	if strings.HasPrefix(href, models.CommunityPath) {
		rest := strings.Trim(strings.TrimPrefix(href, models.CommunityPath), "/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return rest
		}
	}
	return slug.Generate(label)
}

// GetMenu returns the menu for key with its visible items in display order.
// When nothing is persisted for the key, a read-only default item list is
// synthesized with stable index-derived ids; storage is never mutated by a
// read.
func (s *MenuStore) GetMenu(key string) (*models.ResolvedMenu, error) {
	var (
		menuID   uuid.UUID
		menuName string
	)
	err := s.db.QueryRow(`SELECT id, name FROM menus WHERE key = $1`, key).Scan(&menuID, &menuName)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	found := err == nil

	var items []models.MenuItem
	if found {
		rows, err := s.db.Query(`SELECT `+menuItemColumns+` FROM menu_items WHERE menu_id = $1 ORDER BY sort_order`, menuID)
		if err != nil {
			return nil, fmt.Errorf("get menu items: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scanMenuItem(rows)
			if err != nil {
				return nil, fmt.Errorf("scan menu item: %w", err)
			}
			items = append(items, *item)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	if !found || len(items) == 0 {
		return synthesizeDefaultMenu(key), nil
	}

	resolved := &models.ResolvedMenu{
		ID:   menuID.String(),
		Key:  key,
		Name: menuName,
	}
	for _, item := range items {
		if !item.IsVisible {
			continue
		}
		if item.LinkType != models.LinkTypeCategory && item.LinkType != models.LinkTypeCommunity {
			item.LinkType = ResolveLinkType("", item.Href)
		}
		resolved.Items = append(resolved.Items, item)
	}
	return resolved, nil
}

// synthesizeDefaultMenu builds the hardcoded fallback menu for a key. Item
// ids are derived from the index so they are stable across reads.
func synthesizeDefaultMenu(key string) *models.ResolvedMenu {
	name := "Main"
	if key == "footer" {
		name = "Footer"
	}
	resolved := &models.ResolvedMenu{ID: "default", Key: key, Name: name}
	for i, item := range models.DefaultMainMenu {
		item.ID = fmt.Sprintf("default-%s-%d", key, i)
		resolved.Items = append(resolved.Items, item)
	}
	return resolved
}

// MenuItemInput carries the fields accepted when creating or updating a
// menu item. Nil fields keep their current value on update and take their
// default on create.
type MenuItemInput struct {
	Label        *string `json:"label"`
	Href         *string `json:"href"`
	Order        *int    `json:"order"`
	IsVisible    *bool   `json:"isVisible"`
	IsExternal   *bool   `json:"isExternal"`
	OpenInNew    *bool   `json:"openInNew"`
	RequiresAuth *bool   `json:"requiresAuth"`
	BadgeText    *string `json:"badgeText"`
	LinkType     string  `json:"linkType"`
}

func strOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

func intOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func boolOr(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}

// CreateItem adds a menu item to the menu with menuKey. Category items get
// their backing category upserted and linked in the same transaction;
// community items have their href forced to the community path and the
// default boards seeded.
func (s *MenuStore) CreateItem(menuKey string, in MenuItemInput) (*models.MenuItem, error) {
	label := strOr(in.Label, "")
	if strings.TrimSpace(label) == "" {
		return nil, ErrMissingSlug
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	menuID, err := getOrCreateMenu(tx, menuKey)
	if err != nil {
		return nil, err
	}

	href := strOr(in.Href, "")
	linkType := ResolveLinkType(in.LinkType, href)
	order := intOr(in.Order, 0)
	visible := boolOr(in.IsVisible, true)

	var linkedID *uuid.UUID
	if linkType == models.LinkTypeCommunity {
		href = models.CommunityPath
		if err := seedDefaultBoards(tx); err != nil {
			return nil, err
		}
	} else {
		categorySlug := ResolveCategorySlug(href, label)
		if categorySlug == "" {
			return nil, ErrMissingSlug
		}
		href = models.CategoryHrefPrefix + categorySlug

		var catID uuid.UUID
		err := tx.QueryRow(`
			INSERT INTO categories (name, slug, sort_order, is_visible)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name, is_visible = EXCLUDED.is_visible,
				sort_order = EXCLUDED.sort_order, updated_at = NOW()
			RETURNING id`,
			label, categorySlug, order, visible,
		).Scan(&catID)
		if err != nil {
			return nil, fmt.Errorf("upsert linked category: %w", err)
		}
		linkedID = &catID
	}

	row := tx.QueryRow(`
		INSERT INTO menu_items (menu_id, label, href, sort_order, is_visible, is_external, open_in_new, requires_auth, badge_text, link_type, linked_category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+menuItemColumns,
		menuID, label, href, order, visible,
		boolOr(in.IsExternal, false), boolOr(in.OpenInNew, false), boolOr(in.RequiresAuth, false),
		in.BadgeText, linkType, linkedID,
	)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create menu item commit: %w", err)
	}
	return item, nil
}

// UpdateItem modifies a menu item using the same link resolution rules as
// CreateItem. When the link type moves away from category the previously
// linked category is hidden and the link cleared. A category slug change
// never cascades to content tagged under the old slug; migrating that
// content is a separate, explicit admin step.
func (s *MenuStore) UpdateItem(id uuid.UUID, in MenuItemInput) (*models.MenuItem, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1 FOR UPDATE`, id)
	existing, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update menu item lookup: %w", err)
	}

	label := strOr(in.Label, existing.Label)
	href := strOr(in.Href, existing.Href)
	linkType := ResolveLinkType(in.LinkType, href)
	visible := boolOr(in.IsVisible, existing.IsVisible)
	linkedID := existing.LinkedCategoryID

	if linkType == models.LinkTypeCommunity {
		href = models.CommunityPath
		if existing.LinkType == models.LinkTypeCategory && linkedID != nil {
			if _, err := tx.Exec(`UPDATE categories SET is_visible = FALSE, updated_at = NOW() WHERE id = $1`, *linkedID); err != nil {
				return nil, fmt.Errorf("hide unlinked category: %w", err)
			}
		}
		linkedID = nil
		if err := seedDefaultBoards(tx); err != nil {
			return nil, err
		}
	} else {
		categorySlug := ResolveCategorySlug(href, label)
		if categorySlug == "" {
			return nil, ErrMissingSlug
		}
		href = models.CategoryHrefPrefix + categorySlug

		if linkedID != nil {
			_, err := tx.Exec(`
				UPDATE categories SET name = $1, slug = $2, is_visible = $3, updated_at = NOW()
				WHERE id = $4`,
				label, categorySlug, visible, *linkedID,
			)
			if isUniqueViolation(err) {
				return nil, ErrDuplicateKey
			}
			if err != nil {
				return nil, fmt.Errorf("update linked category: %w", err)
			}
		} else {
			var catID uuid.UUID
			err := tx.QueryRow(`
				INSERT INTO categories (name, slug, sort_order, is_visible)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (slug) DO UPDATE SET
					name = EXCLUDED.name, is_visible = EXCLUDED.is_visible, updated_at = NOW()
				RETURNING id`,
				label, categorySlug, existing.SortOrder, visible,
			).Scan(&catID)
			if err != nil {
				return nil, fmt.Errorf("upsert linked category: %w", err)
			}
			linkedID = &catID
		}
	}

	row = tx.QueryRow(`
		UPDATE menu_items SET
			label = $1, href = $2, is_visible = $3, is_external = $4, open_in_new = $5,
			requires_auth = $6, badge_text = $7, link_type = $8, linked_category_id = $9,
			updated_at = NOW()
		WHERE id = $10
		RETURNING `+menuItemColumns,
		label, href, visible,
		boolOr(in.IsExternal, existing.IsExternal), boolOr(in.OpenInNew, existing.OpenInNew),
		boolOr(in.RequiresAuth, existing.RequiresAuth), in.BadgeText, linkType, linkedID, id,
	)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update menu item commit: %w", err)
	}
	return item, nil
}

// DeleteItem removes a menu item. A linked category is hidden, never
// deleted: its slug stays reserved and it shows up on the hidden-categories
// screen for restore or permanent deletion.
func (s *MenuStore) DeleteItem(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1 FOR UPDATE`, id)
	existing, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete menu item lookup: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM menu_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	if existing.LinkType == models.LinkTypeCategory && existing.LinkedCategoryID != nil {
		if _, err := tx.Exec(`UPDATE categories SET is_visible = FALSE, updated_at = NOW() WHERE id = $1`, *existing.LinkedCategoryID); err != nil {
			return fmt.Errorf("hide linked category: %w", err)
		}
	}

	return tx.Commit()
}

// Reorder applies a bulk order update to menu items and keeps each linked
// category's sort order in step, all in one transaction.
func (s *MenuStore) Reorder(menuKey string, items []ReorderItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	menuID, err := getOrCreateMenu(tx, menuKey)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`UPDATE menu_items SET sort_order = $1, menu_id = $2, updated_at = $3 WHERE id = $4`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		if _, err := stmt.Exec(item.Order, menuID, now, item.ID); err != nil {
			return fmt.Errorf("reorder menu item %s: %w", item.ID, err)
		}
	}

	// Mirror the new order onto linked categories so category listings stay
	// visually consistent with the menu.
	catStmt, err := tx.Prepare(`
		UPDATE categories SET sort_order = $1, updated_at = $2
		WHERE id = (
			SELECT linked_category_id FROM menu_items
			WHERE id = $3 AND link_type = 'category' AND linked_category_id IS NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("prepare category reorder: %w", err)
	}
	defer catStmt.Close()

	for _, item := range items {
		if _, err := catStmt.Exec(item.Order, now, item.ID); err != nil {
			return fmt.Errorf("reorder linked category for %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// ProtectedItems returns every menu item with requires_auth set whose link
// type is category or community. Used by the ACL resolver.
func (s *MenuStore) ProtectedItems() ([]models.MenuItem, error) {
	rows, err := s.db.Query(`
		SELECT ` + menuItemColumns + ` FROM menu_items
		WHERE requires_auth AND link_type IN ('category', 'community')`)
	if err != nil {
		return nil, fmt.Errorf("protected menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CategoryRequiresAuth reports whether any category-type menu item pointing
// at the given category (by id or by content href) demands authentication.
// Content pages use this to re-derive the gate's decision independently.
func (s *MenuStore) CategoryRequiresAuth(categoryID *uuid.UUID, categorySlug string) (bool, error) {
	if categoryID == nil && categorySlug == "" {
		return false, nil
	}

	var id any
	if categoryID != nil {
		id = *categoryID
	}
	var required bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM menu_items
			WHERE link_type = 'category' AND requires_auth
			  AND (linked_category_id = $1 OR href = $2 OR href = $3)
		)`,
		id,
		models.ContentPathPrefix+categorySlug,
		models.CategoryHrefPrefix+categorySlug,
	).Scan(&required)
	if err != nil {
		return false, fmt.Errorf("category requires auth: %w", err)
	}
	return required, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
