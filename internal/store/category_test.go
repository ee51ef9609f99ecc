package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"harborcms/internal/models"
)

func TestRestoreUnhidesAndRelinks(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Restore")
		cleanCategories(t, db, "test-restore")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Restore"), Href: ptr("/products/test-restore")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	// Restoring a visible category is rejected.
	if err := categories.Restore(catID, "main"); !errors.Is(err, ErrAlreadyVisible) {
		t.Fatalf("Restore(visible) error = %v, want ErrAlreadyVisible", err)
	}

	if err := menus.DeleteItem(uuid.MustParse(item.ID)); err != nil {
		t.Fatalf("DeleteItem() error: %v", err)
	}

	if err := categories.Restore(catID, "main"); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	cat, err := categories.FindByID(catID)
	if err != nil || cat == nil {
		t.Fatalf("FindByID: %v, %v", cat, err)
	}
	if !cat.IsVisible {
		t.Error("category not visible after restore")
	}

	// Restore recreated a menu item pointing at the category.
	var items int
	err = db.QueryRow(`SELECT COUNT(*) FROM menu_items WHERE linked_category_id = $1`, catID).Scan(&items)
	if err != nil {
		t.Fatalf("count menu items: %v", err)
	}
	if items != 1 {
		t.Errorf("menu items after restore = %d, want 1", items)
	}

	if err := categories.Restore(uuid.New(), "main"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Restore(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestRestoreRollsBackWhenRelinkFails(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		db.Exec(`DROP INDEX IF EXISTS menu_items_restore_guard`)
		cleanMenuItems(t, db, "Test Restore Atomic")
		cleanCategories(t, db, "test-restore-atomic")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Restore Atomic"), Href: ptr("/products/test-restore-atomic")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	if err := menus.DeleteItem(uuid.MustParse(item.ID)); err != nil {
		t.Fatalf("DeleteItem() error: %v", err)
	}

	// Force the menu-item insert inside Restore to collide, so the second
	// half of its transaction fails after the unhide already ran.
	_, err = db.Exec(`CREATE UNIQUE INDEX menu_items_restore_guard ON menu_items (label) WHERE label = 'Test Restore Atomic'`)
	if err != nil {
		t.Fatalf("create guard index: %v", err)
	}
	menuID, err := getOrCreateMenu(db, "main")
	if err != nil {
		t.Fatalf("getOrCreateMenu: %v", err)
	}
	_, err = db.Exec(`INSERT INTO menu_items (menu_id, label, href) VALUES ($1, 'Test Restore Atomic', '/products/test-restore-atomic')`, menuID)
	if err != nil {
		t.Fatalf("insert conflicting menu item: %v", err)
	}

	if err := categories.Restore(catID, "main"); err == nil {
		t.Fatal("Restore() succeeded despite the conflicting menu item")
	}

	// Unhide and relink happen both-or-neither: the failed relink must roll
	// back the unhide.
	cat, err := categories.FindByID(catID)
	if err != nil || cat == nil {
		t.Fatalf("FindByID: %v, %v", cat, err)
	}
	if cat.IsVisible {
		t.Error("category visible after failed restore; unhide was not rolled back")
	}
}

func TestMoveContentsGuards(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	contents := NewContentStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Move From", "Test Move To")
		cleanCategories(t, db, "test-move-from", "test-move-to")
	})

	from, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Move From"), Href: ptr("/products/test-move-from")})
	if err != nil {
		t.Fatalf("CreateItem(from) error: %v", err)
	}
	to, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Move To"), Href: ptr("/products/test-move-to")})
	if err != nil {
		t.Fatalf("CreateItem(to) error: %v", err)
	}
	fromID, toID := *from.LinkedCategoryID, *to.LinkedCategoryID

	if _, err := contents.Create(ContentInput{Title: "c", Slug: "test-move-content-" + uuid.NewString()[:8], CategoryID: &fromID}); err != nil {
		t.Fatalf("content Create() error: %v", err)
	}

	// Self-move is rejected.
	if _, err := categories.MoveContents(fromID, fromID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("MoveContents(self) error = %v, want ErrInvalidTarget", err)
	}

	// A hidden target is rejected.
	if err := categories.Hide(toID); err != nil {
		t.Fatalf("Hide() error: %v", err)
	}
	if _, err := categories.MoveContents(fromID, toID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("MoveContents(hidden target) error = %v, want ErrInvalidTarget", err)
	}

	// A missing source is rejected.
	if _, err := categories.MoveContents(uuid.New(), toID); !errors.Is(err, ErrNotFound) {
		t.Errorf("MoveContents(unknown source) error = %v, want ErrNotFound", err)
	}

	// Unhide and move for real.
	if err := categories.Restore(toID, "main"); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	moved, err := categories.MoveContents(fromID, toID)
	if err != nil {
		t.Fatalf("MoveContents() error: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	n, err := contents.CountByCategory(toID)
	if err != nil {
		t.Fatalf("CountByCategory() error: %v", err)
	}
	if n != 1 {
		t.Errorf("target contents = %d, want 1", n)
	}
}

func TestPermanentDeleteGuards(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	contents := NewContentStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Perm Delete")
		cleanCategories(t, db, "test-perm-delete")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Perm Delete"), Href: ptr("/products/test-perm-delete")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	// Still visible: refuse.
	if err := categories.PermanentlyDelete(catID); !errors.Is(err, ErrCategoryVisible) {
		t.Fatalf("PermanentlyDelete(visible) error = %v, want ErrCategoryVisible", err)
	}

	created, err := contents.Create(ContentInput{Title: "c", Slug: "test-perm-content-" + uuid.NewString()[:8], CategoryID: &catID})
	if err != nil {
		t.Fatalf("content Create() error: %v", err)
	}

	if err := categories.Hide(catID); err != nil {
		t.Fatalf("Hide() error: %v", err)
	}

	// Hidden but not empty: refuse.
	if err := categories.PermanentlyDelete(catID); !errors.Is(err, ErrHasContent) {
		t.Fatalf("PermanentlyDelete(non-empty) error = %v, want ErrHasContent", err)
	}

	if _, err := db.Exec(`DELETE FROM contents WHERE id = $1`, created.ID); err != nil {
		t.Fatalf("delete content: %v", err)
	}

	if err := categories.PermanentlyDelete(catID); err != nil {
		t.Fatalf("PermanentlyDelete() error: %v", err)
	}
	cat, err := categories.FindByID(catID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if cat != nil {
		t.Error("category still present after permanent delete")
	}
}

func TestListExcludesHiddenByDefault(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Hidden List")
		cleanCategories(t, db, "test-hidden-list")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Hidden List"), Href: ptr("/products/test-hidden-list")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID
	if err := categories.Hide(catID); err != nil {
		t.Fatalf("Hide() error: %v", err)
	}

	has := func(list []models.Category) bool {
		for _, c := range list {
			if c.ID == catID {
				return true
			}
		}
		return false
	}

	visible, err := categories.List(false)
	if err != nil {
		t.Fatalf("List(false) error: %v", err)
	}
	if has(visible) {
		t.Error("hidden category appears in the visible list")
	}

	hidden, err := categories.ListHidden()
	if err != nil {
		t.Fatalf("ListHidden() error: %v", err)
	}
	if !has(hidden) {
		t.Error("hidden category missing from ListHidden()")
	}
}
