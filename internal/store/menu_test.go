package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"harborcms/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestGetMenuSynthesizesDefaults(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)

	key := "test-menu-" + uuid.NewString()[:8]

	menu, err := menus.GetMenu(key)
	if err != nil {
		t.Fatalf("GetMenu() error: %v", err)
	}
	if menu.ID != "default" {
		t.Errorf("synthesized menu id = %q, want default", menu.ID)
	}
	if len(menu.Items) != len(models.DefaultMainMenu) {
		t.Fatalf("synthesized item count = %d, want %d", len(menu.Items), len(models.DefaultMainMenu))
	}
	for i, item := range menu.Items {
		if !strings.HasPrefix(item.ID, "default-"+key+"-") {
			t.Errorf("item %d id = %q, want stable default id", i, item.ID)
		}
	}

	// Reading twice yields the same ids, and never persists anything.
	again, err := menus.GetMenu(key)
	if err != nil {
		t.Fatalf("second GetMenu() error: %v", err)
	}
	if again.Items[0].ID != menu.Items[0].ID {
		t.Errorf("default ids not stable across reads: %q vs %q", again.Items[0].ID, menu.Items[0].ID)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM menus WHERE key = $1`, key).Scan(&count); err != nil {
		t.Fatalf("count menus: %v", err)
	}
	if count != 0 {
		t.Errorf("GetMenu() persisted a menu row on read")
	}
}

func TestCreateItemUpsertsCategory(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Upsert Cat")
		cleanCategories(t, db, "test-upsert-cat")
	})

	item, err := menus.CreateItem("main", MenuItemInput{
		Label: ptr("Test Upsert Cat"),
		Order: ptr(7),
	})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}

	if item.Href != "/products/test-upsert-cat" {
		t.Errorf("item href = %q", item.Href)
	}
	if item.LinkType != models.LinkTypeCategory {
		t.Errorf("item link type = %q", item.LinkType)
	}
	if item.LinkedCategoryID == nil {
		t.Fatal("item has no linked category")
	}

	cat, err := categories.FindBySlug("test-upsert-cat")
	if err != nil || cat == nil {
		t.Fatalf("FindBySlug: %v, %v", cat, err)
	}
	if cat.Name != "Test Upsert Cat" || !cat.IsVisible || cat.SortOrder != 7 {
		t.Errorf("upserted category = %+v", cat)
	}
}

func TestCreateItemCommunityForcesHref(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	t.Cleanup(func() { cleanMenuItems(t, db, "Test Community Item") })

	item, err := menus.CreateItem("main", MenuItemInput{
		Label:    ptr("Test Community Item"),
		Href:     ptr("/somewhere/else"),
		LinkType: "community",
	})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}

	if item.Href != models.CommunityPath {
		t.Errorf("community item href = %q, want %q", item.Href, models.CommunityPath)
	}
	if item.LinkedCategoryID != nil {
		t.Error("community item should not link a category")
	}
}

func TestCreateItemRequiresResolvableSlug(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)

	if _, err := menus.CreateItem("main", MenuItemInput{}); !errors.Is(err, ErrMissingSlug) {
		t.Errorf("CreateItem(no label) error = %v, want ErrMissingSlug", err)
	}
}

func TestUpdateItemLinkTypeTransitionHidesCategory(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Transition")
		cleanCategories(t, db, "test-transition")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Transition")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	itemID := uuid.MustParse(item.ID)
	updated, err := menus.UpdateItem(itemID, MenuItemInput{LinkType: "community"})
	if err != nil {
		t.Fatalf("UpdateItem() error: %v", err)
	}

	if updated.LinkType != models.LinkTypeCommunity || updated.Href != models.CommunityPath {
		t.Errorf("updated item = %+v", updated)
	}
	if updated.LinkedCategoryID != nil {
		t.Error("link to category not cleared on transition")
	}

	cat, err := categories.FindByID(catID)
	if err != nil || cat == nil {
		t.Fatalf("FindByID: %v, %v", cat, err)
	}
	if cat.IsVisible {
		t.Error("category still visible after its item moved to community")
	}
}

func TestUpdateItemSlugRenameKeepsContents(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	contents := NewContentStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Rename", "Renamed")
		cleanCategories(t, db, "test-rename-slug", "renamed-slug")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Rename"), Href: ptr("/products/test-rename-slug")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	created, err := contents.Create(ContentInput{
		Title:      "c1",
		Slug:       "test-rename-content-" + uuid.NewString()[:8],
		Status:     models.ContentStatusPublished,
		CategoryID: &catID,
	})
	if err != nil {
		t.Fatalf("content Create() error: %v", err)
	}

	itemID := uuid.MustParse(item.ID)
	if _, err := menus.UpdateItem(itemID, MenuItemInput{Label: ptr("Renamed"), Href: ptr("/products/renamed-slug")}); err != nil {
		t.Fatalf("UpdateItem() error: %v", err)
	}

	// Contents are owned by category id, so the rename keeps them attached.
	n, err := contents.CountByCategory(catID)
	if err != nil {
		t.Fatalf("CountByCategory() error: %v", err)
	}
	if n != 1 {
		t.Errorf("contents after slug rename = %d, want 1", n)
	}

	db.Exec(`DELETE FROM contents WHERE id = $1`, created.ID)
}

func TestDeleteItemHidesLinkedCategory(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Delete Hide")
		cleanCategories(t, db, "test-delete-hide")
	})

	item, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Delete Hide")})
	if err != nil {
		t.Fatalf("CreateItem() error: %v", err)
	}
	catID := *item.LinkedCategoryID

	if err := menus.DeleteItem(uuid.MustParse(item.ID)); err != nil {
		t.Fatalf("DeleteItem() error: %v", err)
	}

	cat, err := categories.FindByID(catID)
	if err != nil || cat == nil {
		t.Fatalf("category deleted instead of hidden: %v, %v", cat, err)
	}
	if cat.IsVisible {
		t.Error("category still visible after its item was deleted")
	}

	if err := menus.DeleteItem(uuid.MustParse(item.ID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteItem() error = %v, want ErrNotFound", err)
	}
}

func TestReorderSyncsLinkedCategories(t *testing.T) {
	db := testDB(t)
	menus := NewMenuStore(db)
	categories := NewCategoryStore(db)
	t.Cleanup(func() {
		cleanMenuItems(t, db, "Test Reorder A", "Test Reorder B")
		cleanCategories(t, db, "test-reorder-a", "test-reorder-b")
	})

	a, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Reorder A"), Href: ptr("/products/test-reorder-a")})
	if err != nil {
		t.Fatalf("CreateItem(a) error: %v", err)
	}
	b, err := menus.CreateItem("main", MenuItemInput{Label: ptr("Test Reorder B"), Href: ptr("/products/test-reorder-b")})
	if err != nil {
		t.Fatalf("CreateItem(b) error: %v", err)
	}

	err = menus.Reorder("main", []ReorderItem{
		{ID: uuid.MustParse(a.ID), Order: 42},
		{ID: uuid.MustParse(b.ID), Order: 41},
	})
	if err != nil {
		t.Fatalf("Reorder() error: %v", err)
	}

	catA, err := categories.FindByID(*a.LinkedCategoryID)
	if err != nil || catA == nil {
		t.Fatalf("FindByID(a): %v, %v", catA, err)
	}
	if catA.SortOrder != 42 {
		t.Errorf("linked category a order = %d, want 42", catA.SortOrder)
	}

	catB, err := categories.FindByID(*b.LinkedCategoryID)
	if err != nil || catB == nil {
		t.Fatalf("FindByID(b): %v, %v", catB, err)
	}
	if catB.SortOrder != 41 {
		t.Errorf("linked category b order = %d, want 41", catB.SortOrder)
	}
}
