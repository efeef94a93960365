// Package storage holds the sentinel errors repositories mark on constraint
// violations so use cases can translate them without knowing the driver.
package storage

import "errors"

var (
	// ErrDuplicate marks a write rejected by a unique constraint.
	ErrDuplicate = errors.New("duplicate row")

	// ErrReferenced marks a write rejected by a foreign key constraint,
	// either a missing referenced row or a delete of a referenced one.
	ErrReferenced = errors.New("row referenced by another table")

	// ErrNotFound marks an update or delete that matched no row.
	ErrNotFound = errors.New("row not found")

	// ErrInvalidFilter marks a dynamic filter rejected before any query ran:
	// unknown field, unsupported operator, or a value of the wrong kind.
	ErrInvalidFilter = errors.New("invalid filter")
)
