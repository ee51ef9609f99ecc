// Package store provides database access methods for all harborcms
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import "errors"

// Sentinel errors returned by store operations. Handlers map these to the
// HTTP error taxonomy; anything else is treated as an internal error.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a board key or category slug would
	// collide with an existing one.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrAlreadyVisible is returned by Restore when the category is not hidden.
	ErrAlreadyVisible = errors.New("category already visible")

	// ErrCategoryVisible is returned by PermanentlyDelete for a visible category.
	ErrCategoryVisible = errors.New("category is visible")

	// ErrHasContent is returned by PermanentlyDelete while contents still
	// reference the category.
	ErrHasContent = errors.New("category still has contents")

	// ErrInvalidTarget is returned by MoveContents for a self-move or a
	// hidden target category.
	ErrInvalidTarget = errors.New("invalid target category")

	// ErrBoardHasPosts is returned by Delete while posts still reference
	// the board key.
	ErrBoardHasPosts = errors.New("board still has posts")

	// ErrMissingSlug is returned when no category slug can be resolved from
	// a menu item's href or label.
	ErrMissingSlug = errors.New("missing category slug")

	// ErrMissingKey is returned when a board key resolves to empty.
	ErrMissingKey = errors.New("missing board key")
)
