package comments

import (
	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/content"
)

// Marker is the decorator's verdict for one rendered occurrence.
//
// A hidden marker renders as plain passthrough text that still exposes its
// anchor; a visible one renders as an interactive marker, emphasised when
// Focused. Orphan markers belong to entities with no handle (for example
// comments loaded from stored content) and render hidden.
type Marker struct {
	EntityKey string
	Anchor    annotation.AnchorID
	Hidden    bool
	Focused   bool
	Orphan    bool
}

// Interactive reports whether clicks on the marker reach the handle.
func (m Marker) Interactive() bool { return !m.Hidden && !m.Orphan }

// mount is the local state of one decorated entity. It lives while at least
// one occurrence of the entity is rendered each frame.
type mount struct {
	anchors []annotation.AnchorID // one per occurrence, in render order
	hidden  bool
	focused bool
	frame   uint64
	used    int
}

func (m *mount) setHidden(v bool)  { m.hidden = v }
func (m *mount) setFocused(v bool) { m.focused = v }

// Decorator binds rendered comment occurrences to their handles.
//
// Renderers call BeginFrame, then Decorate once per occurrence in render
// order, then EndFrame. Entities not decorated during a frame are unmounted:
// their local state is dropped and their anchors released.
type Decorator struct {
	w      *Widget
	mounts map[string]*mount
	frame  uint64
}

func newDecorator(w *Widget) *Decorator {
	return &Decorator{w: w, mounts: map[string]*mount{}}
}

func (d *Decorator) BeginFrame() { d.frame++ }

// Decorate mounts (or reuses) the entity's local state, attaches it to the
// entity's handle, and returns how the occurrence should render.
//
// Every occurrence re-attaches the handle with the anchor of the entity's
// first occurrence, so position queries track where the comment starts.
func (d *Decorator) Decorate(occ content.Occurrence) Marker {
	m, ok := d.mounts[occ.EntityKey]
	if !ok {
		m = &mount{}
		d.mounts[occ.EntityKey] = m
	}
	if m.frame != d.frame {
		m.frame = d.frame
		m.used = 0
	}
	idx := m.used
	m.used++
	if idx >= len(m.anchors) {
		m.anchors = append(m.anchors, d.w.anchors.Allocate())
	}
	anchor := m.anchors[idx]

	h, ok := d.w.registry.Lookup(occ.EntityKey)
	if !ok {
		if idx == 0 {
			d.w.logger.Debug("comments: occurrence without handle", "entity", occ.EntityKey)
		}
		return Marker{EntityKey: occ.EntityKey, Anchor: anchor, Hidden: true, Orphan: true}
	}
	h.Attach(m.anchors[0], m.setHidden, m.setFocused)
	return Marker{
		EntityKey: occ.EntityKey,
		Anchor:    anchor,
		Hidden:    m.hidden,
		Focused:   m.focused,
	}
}

// EndFrame unmounts entities and surplus occurrences not decorated since
// BeginFrame.
func (d *Decorator) EndFrame() {
	for key, m := range d.mounts {
		if m.frame != d.frame {
			for _, id := range m.anchors {
				d.w.anchors.Release(id)
			}
			delete(d.mounts, key)
			d.w.logger.Debug("comments: unmounted", "entity", key)
			continue
		}
		for _, id := range m.anchors[m.used:] {
			d.w.anchors.Release(id)
		}
		m.anchors = m.anchors[:m.used]
	}
}

// Click forwards a click on the entity's marker to its handle. Clicks on
// hidden, orphaned, or unmounted markers are ignored.
func (d *Decorator) Click(entityKey string) bool {
	m, ok := d.mounts[entityKey]
	if !ok || m.hidden {
		return false
	}
	h, ok := d.w.registry.Lookup(entityKey)
	if !ok {
		return false
	}
	h.HandleClick()
	return true
}

// Marker returns the current state of a mounted entity without decorating.
func (d *Decorator) Marker(entityKey string) (Marker, bool) {
	m, ok := d.mounts[entityKey]
	if !ok || len(m.anchors) == 0 {
		return Marker{}, false
	}
	_, handled := d.w.registry.Lookup(entityKey)
	return Marker{
		EntityKey: entityKey,
		Anchor:    m.anchors[0],
		Hidden:    m.hidden || !handled,
		Focused:   m.focused,
		Orphan:    !handled,
	}, true
}

// Mounted returns the number of entities currently mounted.
func (d *Decorator) Mounted() int { return len(d.mounts) }
