package field

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/content"
)

func TestRender_LineNumberAlignment_1To120(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("x")
	}

	m, err := New(Config{Text: sb.String(), ShowLineNums: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = m.Blur()
	m = m.SetSize(10, 120)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 120 {
		t.Fatalf("expected 120 lines, got %d", len(lines))
	}
	for i, line := range lines {
		wantPrefix := fmt.Sprintf("%*d ", 3, i+1)
		if !strings.HasPrefix(line, wantPrefix) {
			t.Fatalf("line %d prefix: got %q, want prefix %q", i+1, line, wantPrefix)
		}
	}
}

func TestRender_MarkerFollowsHandleState(t *testing.T) {
	st := ansiStyle()
	m, _ := newCommentField(t, "hello world", Config{Style: st})
	m, h := commentOver(t, m, span(0, 0, 5))
	m = m.Blur()

	got, _ := m.renderContent()
	want := st.Marker.Render("hello") + st.Text.Render(" world")
	if !strings.Contains(want, "\x1b[") {
		t.Fatalf("marker style produced no ANSI: %q", want)
	}
	if got != want {
		t.Fatalf("visible marker:\n got: %q\nwant: %q", got, want)
	}

	h.Focus()
	got, _ = m.renderContent()
	want = st.MarkerFocused.Render("hello") + st.Text.Render(" world")
	if got != want {
		t.Fatalf("focused marker:\n got: %q\nwant: %q", got, want)
	}

	h.Hide()
	got, _ = m.renderContent()
	want = st.Text.Render("hello world")
	if got != want {
		t.Fatalf("hidden marker:\n got: %q\nwant: %q", got, want)
	}

	h.Show()
	h.Unfocus()
	got, _ = m.renderContent()
	want = st.Marker.Render("hello") + st.Text.Render(" world")
	if got != want {
		t.Fatalf("shown marker:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_PinGlyph(t *testing.T) {
	st := ansiStyle()
	m, _ := newCommentField(t, "hello", Config{Style: st})
	m, h := commentOver(t, m, span(0, 2, 2))
	m = m.Blur()

	got, lay := m.renderContent()
	want := st.Text.Render("he") + st.Marker.Render("*") + st.Text.Render("llo")
	if got != want {
		t.Fatalf("pin:\n got: %q\nwant: %q", got, want)
	}
	if c := lay.lines[0].cells[2]; !c.marker || c.entity != h.Key() || c.col != 2 {
		t.Fatalf("pin cell: got %+v", c)
	}

	h.Hide()
	got, lay = m.renderContent()
	if want := st.Text.Render("hello"); got != want {
		t.Fatalf("hidden pin:\n got: %q\nwant: %q", got, want)
	}
	if n := len(lay.lines[0].cells); n != 5 {
		t.Fatalf("hidden pin cells: got %d, want 5", n)
	}
	// A hidden pin still exposes its anchor.
	if _, ok := m.anchors.ResolveAnchor(h.Anchor()); !ok {
		t.Fatalf("hidden pin anchor does not resolve")
	}
}

func TestRender_OrphanOccurrenceIsPassthrough(t *testing.T) {
	s := content.New("hello", content.WithKeyFunc(seqKeys()))
	s, key := s.CreateEntity("COMMENT", content.Mutable, nil)
	s, err := s.ApplyEntity(span(0, 0, 5), key)
	if err != nil {
		t.Fatalf("ApplyEntity: %v", err)
	}
	data, err := content.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	st := ansiStyle()
	m, err := New(Config{Value: string(data), Style: st, CommentsEnabled: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m = m.Blur()

	got, lay := m.renderContent()
	if want := st.Text.Render("hello"); got != want {
		t.Fatalf("orphan:\n got: %q\nwant: %q", got, want)
	}
	if c := lay.lines[0].cells[0]; c.marker || c.entity != key {
		t.Fatalf("orphan cell: got %+v", c)
	}
	mk, ok := m.Widget().Decorator().Marker(key)
	if !ok || !mk.Orphan || !mk.Hidden {
		t.Fatalf("orphan marker: got (%+v,%v)", mk, ok)
	}
}

func TestRender_AnchorPlacedAtMarker(t *testing.T) {
	m, _ := newCommentField(t, "ab\ncd hello", Config{ShowLineNums: true})
	m, h := commentOver(t, m, span(1, 3, 8))

	r, ok := m.anchors.ResolveAnchor(h.Anchor())
	if !ok {
		t.Fatalf("anchor %d does not resolve", h.Anchor())
	}
	want := annotation.Rect{Top: 1, Left: 5, Width: 5, Height: 1}
	if r != want {
		t.Fatalf("anchor rect: got %+v, want %+v", r, want)
	}
	if got := h.AnchorPosition(); got != 1 {
		t.Fatalf("AnchorPosition: got %d, want 1", got)
	}
}

func TestRender_MultiBlockEntityAnchorsAtFirstOccurrence(t *testing.T) {
	m, _ := newCommentField(t, "abcdef\nghij", Config{})
	m, h := commentOver(t, m, content.Range{
		Start: content.Pos{Row: 0, Col: 3},
		End:   content.Pos{Row: 1, Col: 2},
	})

	if got := m.Widget().Decorator().Mounted(); got != 1 {
		t.Fatalf("mounted: got %d, want 1", got)
	}
	if got := m.anchors.Len(); got != 2 {
		t.Fatalf("live anchors: got %d, want one per occurrence (2)", got)
	}
	r, ok := m.anchors.ResolveAnchor(h.Anchor())
	if !ok || r.Top != 0 || r.Left != 3 {
		t.Fatalf("handle anchor: got (%+v,%v), want first occurrence at row 0 col 3", r, ok)
	}

	h.Focus()
	_, lay := m.renderContent()
	for _, c := range []cell{lay.lines[0].cells[3], lay.lines[1].cells[0]} {
		if !c.marker || c.entity != h.Key() {
			t.Fatalf("occurrence cell: got %+v", c)
		}
	}
}
