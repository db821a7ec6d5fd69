package annotation

// AnchorID identifies a rendered anchor in an AnchorResolver. The zero value
// means no anchor.
type AnchorID uint64

// Rect is a rendered anchor's box, relative to the top-left of the visible
// viewport. Top is negative or past the viewport height for anchors scrolled
// out of view.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// AnchorResolver resolves anchors placed by the rendering layer.
type AnchorResolver interface {
	// ResolveAnchor returns the anchor's current box. ok is false for the zero
	// ID, for released anchors, and for anchors not yet placed.
	ResolveAnchor(id AnchorID) (Rect, bool)
	// ScrollOffset is the number of rows scrolled past the top of the document.
	ScrollOffset() int
}

// AnchorTable is the owning table behind AnchorIDs.
//
// It is not safe for concurrent use; it lives on the UI update loop.
type AnchorTable struct {
	next   AnchorID
	rects  map[AnchorID]Rect
	live   map[AnchorID]struct{}
	scroll int
}

// NewAnchorTable returns an empty table with scroll offset 0.
func NewAnchorTable() *AnchorTable {
	return &AnchorTable{
		rects: map[AnchorID]Rect{},
		live:  map[AnchorID]struct{}{},
	}
}

// Allocate reserves a new ID. It resolves only after Place.
func (t *AnchorTable) Allocate() AnchorID {
	t.next++
	t.live[t.next] = struct{}{}
	return t.next
}

// Place records the box of a live anchor. Placing a released ID is ignored.
func (t *AnchorTable) Place(id AnchorID, r Rect) {
	if _, ok := t.live[id]; !ok {
		return
	}
	t.rects[id] = r
}

// Release drops an anchor; later lookups of id fail.
func (t *AnchorTable) Release(id AnchorID) {
	delete(t.live, id)
	delete(t.rects, id)
}

// SetScroll records the viewport's scroll offset in rows.
func (t *AnchorTable) SetScroll(offset int) { t.scroll = offset }

// ResolveAnchor returns the box last placed for id, relative to the viewport.
func (t *AnchorTable) ResolveAnchor(id AnchorID) (Rect, bool) {
	if id == 0 {
		return Rect{}, false
	}
	r, ok := t.rects[id]
	return r, ok
}

// ScrollOffset returns the offset recorded by SetScroll.
func (t *AnchorTable) ScrollOffset() int { return t.scroll }

// Len returns the number of live anchors.
func (t *AnchorTable) Len() int { return len(t.live) }
