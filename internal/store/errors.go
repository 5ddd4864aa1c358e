package store

import "errors"

// Operation-level failures reported to callers. The TUI maps each to a
// human message; nothing in this package prints.
var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrDuplicateID       = errors.New("product id already exists")
	ErrPersistence       = errors.New("persistence failure")
)
