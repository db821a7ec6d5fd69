package content

import "unicode"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, extends the selection; if false clears it
}

// Move moves the cursor. With Extend the selection grows from its anchor
// (or from the previous cursor when nothing was selected).
func (s State) Move(m Move) State {
	prev := s.cursor
	next := s.clampPos(s.moveCursor(prev, m))

	if !m.Extend {
		return s.WithCursor(next)
	}

	anchor := prev
	if s.sel.active && s.sel.anchor != s.sel.end {
		anchor = s.sel.anchor
	}
	if anchor == next {
		return s.WithCursor(next)
	}
	sel := selectionState{active: true, anchor: anchor, end: next}
	if sel == s.sel && next == s.cursor {
		return s
	}
	s.sel = sel
	s.cursor = next
	s.touch()
	return s
}

func (s State) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveRune:
		return s.moveRune(p, m.Dir)
	case MoveWord:
		return s.moveWord(p, m.Dir)
	case MoveLine:
		switch m.Dir {
		case DirUp:
			return Pos{Row: p.Row - 1, Col: p.Col}
		case DirDown:
			return Pos{Row: p.Row + 1, Col: p.Col}
		case DirHome:
			return Pos{Row: p.Row}
		case DirEnd:
			return Pos{Row: p.Row, Col: s.lineLen(p.Row)}
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp, DirLeft:
			return Pos{}
		default:
			last := len(s.blocks) - 1
			return Pos{Row: last, Col: s.lineLen(last)}
		}
	}
	return p
}

func (s State) moveRune(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: s.lineLen(p.Row - 1)}
		}
	case DirRight:
		if p.Col < s.lineLen(p.Row) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < len(s.blocks)-1 {
			return Pos{Row: p.Row + 1}
		}
	case DirUp:
		return Pos{Row: p.Row - 1, Col: p.Col}
	case DirDown:
		return Pos{Row: p.Row + 1, Col: p.Col}
	}
	return p
}

func (s State) moveWord(p Pos, dir MoveDir) Pos {
	text := s.blocks[p.Row].text
	col := p.Col
	switch dir {
	case DirLeft:
		if col == 0 {
			return s.moveRune(p, DirLeft)
		}
		for col > 0 && unicode.IsSpace(text[col-1]) {
			col--
		}
		for col > 0 && !unicode.IsSpace(text[col-1]) {
			col--
		}
	case DirRight:
		if col >= len(text) {
			return s.moveRune(p, DirRight)
		}
		for col < len(text) && !unicode.IsSpace(text[col]) {
			col++
		}
		for col < len(text) && unicode.IsSpace(text[col]) {
			col++
		}
	default:
		return s.moveRune(p, dir)
	}
	return Pos{Row: p.Row, Col: col}
}
