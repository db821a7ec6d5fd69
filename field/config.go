package field

import (
	"log/slog"

	"github.com/iw2rmb/marginalia/comments"
	"github.com/iw2rmb/marginalia/content"
)

// Config configures the field Model.
type Config struct {
	// Value is serialized content (see content.Raw). When empty, Text is
	// loaded as plain unstyled blocks.
	Value string
	Text  string

	// Location identifies this field to the comment application.
	Location        string
	App             comments.App
	CommentsEnabled bool

	// EntityTypes are merged over the registered Plugins; the comment entity
	// type is always appended.
	EntityTypes []EntityType
	Plugins     *Plugins

	ShowLineNums bool
	Style        Style
	KeyMap       KeyMap

	// OnSave is called after every effective change with the new value.
	OnSave func(SaveEvent)

	// KeyFunc overrides entity and block key generation.
	KeyFunc content.KeyFunc

	Logger *slog.Logger
}

// SaveEvent carries the serialized content after a change.
type SaveEvent struct {
	Version         uint64
	Value           string
	Raw             content.Raw
	RemovedEntities []string
}
