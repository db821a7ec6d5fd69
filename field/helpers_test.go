package field

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/comments"
	"github.com/iw2rmb/marginalia/content"
)

type recordingApp struct {
	widgets []*comments.Widget
	handles []*annotation.Handle
	locs    []string
}

func (a *recordingApp) RegisterWidget(w *comments.Widget) { a.widgets = append(a.widgets, w) }

func (a *recordingApp) MakeComment(h *annotation.Handle, location string) {
	a.handles = append(a.handles, h)
	a.locs = append(a.locs, location)
}

func seqKeys() content.KeyFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("key%04d", n)
	}
}

// ansiStyle returns marker styles bound to a renderer that always emits
// colour, so tests do not depend on the terminal running them.
func ansiStyle() Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	return Style{
		Text:          r.NewStyle(),
		Marker:        r.NewStyle().Background(lipgloss.Color("30")),
		MarkerFocused: r.NewStyle().Background(lipgloss.Color("37")).Bold(true),
		PinGlyph:      "*",
	}
}

func newCommentField(t *testing.T, text string, cfg Config) (Model, *recordingApp) {
	t.Helper()
	app := &recordingApp{}
	cfg.Text = text
	cfg.App = app
	cfg.CommentsEnabled = true
	if cfg.Location == "" {
		cfg.Location = "page.body"
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = seqKeys()
	}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, app
}

func commentOver(t *testing.T, m Model, r content.Range) (Model, *annotation.Handle) {
	t.Helper()
	m = m.SetState(m.State().WithSelection(r))
	m, h, err := m.AddComment()
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	return m, h
}

func span(row, start, end int) content.Range {
	return content.Range{Start: content.Pos{Row: row, Col: start}, End: content.Pos{Row: row, Col: end}}
}
