package grocery

import "errors"

var (
	// ErrValidation covers bad input shape or range: missing name or
	// category, non-positive price, quantity below one.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate is returned when a catalog insert collides with an
	// existing item name in the same store (case-insensitive).
	ErrDuplicate = errors.New("item already exists")

	// ErrNotFound is returned for unknown item ids.
	ErrNotFound = errors.New("item not found")

	// ErrBadIndex is returned for archive indices outside the ring.
	ErrBadIndex = errors.New("invalid archive index")

	// ErrNothingToArchive is returned when the archive selection is empty.
	ErrNothingToArchive = errors.New("no items to archive")
)
