package content

import "errors"

var (
	// ErrUnknownEntity is returned when an operation names an entity key that
	// is not in the entity map.
	ErrUnknownEntity = errors.New("content: unknown entity")

	// ErrMalformedContent is returned by Parse and FromRaw for stored content
	// that cannot be loaded.
	ErrMalformedContent = errors.New("content: malformed content")
)
