package core

import "errors"

// Common errors.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrInvalidColor = errors.New("color is not part of the palette")
	ErrDragActive   = errors.New("a drag session is already active")
)
