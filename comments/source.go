package comments

import (
	"fmt"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/content"
)

// Source creates one comment annotation from the current selection.
type Source struct {
	w     *Widget
	spent bool
}

// NewSource returns a fresh one-shot source. Whether commenting is enabled
// is checked by the caller.
func (w *Widget) NewSource() *Source {
	return &Source{w: w}
}

// Spent reports whether Run has already been called successfully.
func (s *Source) Spent() bool { return s.spent }

// Run creates a MUTABLE comment entity over the selection (a zero-width pin
// when the selection is collapsed), registers its handle, notifies the host,
// and commits the new state. It runs at most once.
func (s *Source) Run() (*annotation.Handle, error) {
	if s.spent {
		return nil, ErrSourceSpent
	}
	w := s.w
	if !w.initialized {
		return nil, ErrNotInitialized
	}

	state := w.acc.State()
	state, key := state.CreateEntity(w.entityType, content.Mutable, map[string]any{
		"hidden":  false,
		"focused": false,
	})
	state, err := state.ApplyEntityOverSelection(key)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.spent = true

	h := w.registry.Create(key, w.acc)
	if w.app != nil {
		w.app.MakeComment(h, w.location)
	}
	w.acc.SetState(state)
	w.logger.Debug("comments: annotation created", "entity", key, "location", w.location)
	return h, nil
}
