package field

import "github.com/iw2rmb/marginalia/content"

// hit is the document position under a viewport cell.
type hit struct {
	pos    content.Pos
	entity string
	marker bool
}

// screenToDoc maps viewport-local coordinates to a document position.
//
// Coordinates are terminal cells relative to the viewport's content region.
// Gutter clicks map to column 0; clicks past the end of a line map to its
// end.
func (m *Model) screenToDoc(x, y int) hit {
	if m.layout == nil || len(m.layout.lines) == 0 {
		return hit{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, len(m.layout.lines)-1)
	line := m.layout.lines[row]

	cx := x - m.layout.gutter
	if cx < 0 {
		return hit{pos: content.Pos{Row: row}}
	}
	if cx >= len(line.cells) {
		return hit{pos: content.Pos{Row: row, Col: line.textLen}}
	}
	c := line.cells[cx]
	return hit{
		pos:    content.Pos{Row: row, Col: c.col},
		entity: c.entity,
		marker: c.marker,
	}
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
func (m Model) ScreenToDoc(x, y int) content.Pos {
	return (&m).screenToDoc(x, y).pos
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
