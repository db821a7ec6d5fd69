package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/comments"
	"github.com/iw2rmb/marginalia/content"
	"github.com/iw2rmb/marginalia/internal/grapheme"
)

// cell maps one terminal cell of a rendered line back to the document.
type cell struct {
	col    int    // rune column in the block
	entity string // entity key, if the cell belongs to an entity
	marker bool   // the cell is part of an interactive comment marker
}

type lineLayout struct {
	cells   []cell
	textLen int
}

// placement is where a decorated occurrence's anchor landed, in document
// rows and content cells (gutter excluded).
type placement struct {
	anchor annotation.AnchorID
	row    int
	left   int
	width  int
}

type layout struct {
	lines      []lineLayout
	gutter     int
	placements []placement
}

// entityRun is one occurrence being painted on the current line.
type entityRun struct {
	key       string
	typ       string
	comment   bool
	marker    comments.Marker
	startCell int
	endCell   int
}

type segment struct {
	styleKey string
	style    lipgloss.Style
	text     string
}

func (m *Model) renderContent() (string, *layout) {
	s := m.doc.state
	lay := &layout{lines: make([]lineLayout, 0, s.BlockCount())}

	digits := 0
	if m.cfg.ShowLineNums {
		digits = len(strconv.Itoa(s.BlockCount()))
		lay.gutter = digits + 1
	}
	width := 0
	if m.viewport.Width > 0 {
		width = max(m.viewport.Width-m.viewport.Style.GetHorizontalFrameSize()-lay.gutter, 1)
	}

	dec := m.widget.Decorator()
	dec.BeginFrame()
	out := make([]string, 0, s.BlockCount())
	for row := 0; row < s.BlockCount(); row++ {
		line, ll, placements := m.renderLine(s, row, width)
		lay.lines = append(lay.lines, ll)
		lay.placements = append(lay.placements, placements...)

		if m.cfg.ShowLineNums {
			line = m.cfg.Style.LineNum.Render(fmt.Sprintf("%*d", digits, row+1)) + m.cfg.Style.Gutter.Render(" ") + line
		}
		out = append(out, line)
	}
	dec.EndFrame()

	return strings.Join(out, "\n"), lay
}

func (m *Model) renderLine(s content.State, row, width int) (string, lineLayout, []placement) {
	text := []rune(s.Line(row))
	commentType := m.widget.EntityType()
	dec := m.widget.Decorator()

	runAt := make([]*entityRun, len(text))
	pinsAt := map[int][]*entityRun{}
	var runs []*entityRun
	for _, occ := range s.Occurrences(row) {
		e, _ := s.Entity(occ.EntityKey)
		r := &entityRun{key: occ.EntityKey, typ: e.Type, startCell: -1}
		if e.Type == commentType {
			r.comment = true
			r.marker = dec.Decorate(occ)
		}
		runs = append(runs, r)
		if occ.IsPin() {
			pinsAt[occ.StartCol] = append(pinsAt[occ.StartCol], r)
			continue
		}
		for c := occ.StartCol; c < occ.EndCol; c++ {
			runAt[c] = r
		}
	}

	cursor := s.Cursor()
	sel, selOK := s.Selection()
	showCursor := m.focused && cursor.Row == row

	var (
		segs  []segment
		cells []cell
	)
	emit := func(text string, w int, c cell, key string, st lipgloss.Style) {
		if width <= 0 || len(cells)+w <= width {
			if n := len(segs); n > 0 && segs[n-1].styleKey == key {
				segs[n-1].text += text
			} else {
				segs = append(segs, segment{styleKey: key, style: st, text: text})
			}
		}
		for range w {
			cells = append(cells, c)
		}
	}

	for col := 0; col <= len(text); col++ {
		for _, p := range pinsAt[col] {
			if !p.comment {
				continue
			}
			p.startCell, p.endCell = len(cells), len(cells)
			if p.marker.Hidden {
				continue
			}
			glyph := m.cfg.Style.PinGlyph
			if glyph == "" {
				glyph = "◆"
			}
			key, st := m.markerStyle(p.marker)
			emit(glyph, max(grapheme.Width(glyph), 1), cell{col: col, entity: p.key, marker: true}, key, st)
			p.endCell = len(cells)
		}
		if col == len(text) {
			break
		}

		r := runAt[col]
		c := cell{col: col}
		key, st := "text", m.cfg.Style.Text
		if r != nil {
			c.entity = r.key
			if r.startCell < 0 {
				r.startCell = len(cells)
			}
			key, st = m.entityStyle(r)
			c.marker = r.comment && r.marker.Interactive()
		}
		if selOK && inRange(sel, row, col) {
			key, st = "selection", m.cfg.Style.Selection
		}
		if showCursor && cursor.Col == col {
			key, st = "cursor", m.cfg.Style.Cursor
		}
		emit(grapheme.Printable(text[col]), grapheme.RuneWidth(text[col]), c, key, st)
		if r != nil {
			r.endCell = len(cells)
		}
	}
	if showCursor && cursor.Col == len(text) {
		emit(" ", 1, cell{col: len(text)}, "cursor", m.cfg.Style.Cursor)
	}

	var sb strings.Builder
	for _, seg := range segs {
		sb.WriteString(seg.style.Render(seg.text))
	}

	var placements []placement
	for _, r := range runs {
		if !r.comment || r.startCell < 0 {
			continue
		}
		placements = append(placements, placement{
			anchor: r.marker.Anchor,
			row:    row,
			left:   r.startCell,
			width:  r.endCell - r.startCell,
		})
	}
	return sb.String(), lineLayout{cells: cells, textLen: len(text)}, placements
}

func (m *Model) markerStyle(mk comments.Marker) (string, lipgloss.Style) {
	if mk.Focused {
		return "marker-focused", m.cfg.Style.MarkerFocused
	}
	return "marker", m.cfg.Style.Marker
}

func (m *Model) entityStyle(r *entityRun) (string, lipgloss.Style) {
	if r.comment {
		if r.marker.Hidden {
			return "text", m.cfg.Style.Text
		}
		return m.markerStyle(r.marker)
	}
	if t, ok := m.types[r.typ]; ok && t.Style != nil {
		return "entity:" + r.typ, *t.Style
	}
	return "text", m.cfg.Style.Text
}

func inRange(r content.Range, row, col int) bool {
	p := content.Pos{Row: row, Col: col}
	return content.ComparePos(p, r.Start) >= 0 && content.ComparePos(p, r.End) < 0
}
