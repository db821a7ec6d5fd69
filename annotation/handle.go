package annotation

import (
	"log/slog"

	"github.com/iw2rmb/marginalia/content"
)

// Accessors read and replace the owning field's current content state.
type Accessors struct {
	State    func() content.State
	SetState func(content.State)
}

func (a Accessors) valid() bool { return a.State != nil && a.SetState != nil }

// Handle is the live annotation object for one entity.
type Handle struct {
	key     string
	acc     Accessors
	anchors AnchorResolver
	logger  *slog.Logger

	anchor     AnchorID
	setHidden  func(bool)
	setFocused func(bool)
	onClick    func()
}

// Key returns the entity key the handle is bound to.
func (h *Handle) Key() string { return h.key }

// Attach replaces the UI bindings unconditionally. Renderers call it on every
// paint; repeating it with the same values has no further effect.
func (h *Handle) Attach(anchor AnchorID, setHidden, setFocused func(bool)) {
	h.anchor = anchor
	h.setHidden = setHidden
	h.setFocused = setFocused
}

// Attached reports whether the most recent Attach bound any setter. The
// bindings are not cleared when the renderer unmounts the entity, so the
// answer may be stale after unmount.
func (h *Handle) Attached() bool {
	return h.setHidden != nil || h.setFocused != nil
}

// Anchor returns the anchor bound by the most recent Attach.
func (h *Handle) Anchor() AnchorID { return h.anchor }

func (h *Handle) Focus() {
	if h.setFocused != nil {
		h.setFocused(true)
	}
}

func (h *Handle) Unfocus() {
	if h.setFocused != nil {
		h.setFocused(false)
	}
}

func (h *Handle) Show() {
	if h.setHidden != nil {
		h.setHidden(false)
	}
}

func (h *Handle) Hide() {
	if h.setHidden != nil {
		h.setHidden(true)
	}
}

// RegisterClickHandler replaces the click handler; the last writer wins.
func (h *Handle) RegisterClickHandler(fn func()) {
	h.onClick = fn
}

// HandleClick invokes the registered click handler, if any.
func (h *Handle) HandleClick() {
	if h.onClick != nil {
		h.onClick()
	}
}

// RequestRemoval asks the owning field to drop the entity. The text the
// entity spans stays in the document.
func (h *Handle) RequestRemoval() {
	if !h.acc.valid() {
		return
	}
	next, ch := h.acc.State().RemoveEntity(h.key)
	if !ch.Changed() {
		h.logger.Debug("annotation: removal of absent entity", "entity", h.key)
		return
	}
	h.acc.SetState(next)
}

// AnchorPosition returns the anchor's top edge in document rows: its
// viewport-relative top plus the scroll offset. It returns 0 when the anchor
// does not resolve.
func (h *Handle) AnchorPosition() int {
	if h.anchors == nil {
		return 0
	}
	r, ok := h.anchors.ResolveAnchor(h.anchor)
	if !ok {
		return 0
	}
	return r.Top + h.anchors.ScrollOffset()
}
