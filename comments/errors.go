package comments

import "errors"

var (
	ErrAlreadyInitialized = errors.New("comments: widget already initialized")
	ErrNotInitialized     = errors.New("comments: widget not initialized")
	ErrInvalidAccessors   = errors.New("comments: accessors must read and replace state")
	// ErrSourceSpent is returned when a Source is run a second time.
	ErrSourceSpent = errors.New("comments: source already ran")
)
