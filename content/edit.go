package content

import (
	"strings"
)

// Apply applies a sequence of text edits in order. Each edit's range is
// interpreted against the state produced by the previous edit.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Inserted runes carry no entity; entity runs and pins shift with the text.
// - Pins strictly inside a deleted range are dropped.
// - An IMMUTABLE entity losing any rune is stripped whole.
// - Entities left without occurrences are dropped from the entity map.
// - Cursor moves to the end of the last effective edit; selection is cleared.
func (s State) Apply(edits ...TextEdit) (State, Change) {
	before := s
	if len(edits) == 0 {
		return before, Diff(before, before)
	}

	s.mutableBlocks()
	var applied []AppliedEdit
	cursor := s.cursor
	for _, e := range edits {
		next, ae, changed := s.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		applied = append(applied, ae)
		cursor = next
	}
	if len(applied) == 0 {
		return before, Diff(before, before)
	}

	s.cursor = s.clampPos(cursor)
	s.sel = selectionState{}
	s.touch()
	ch := Diff(before, s)
	ch.AppliedEdits = applied
	return s, ch
}

// InsertText inserts text at the cursor, or replaces the active selection.
func (s State) InsertText(text string) (State, Change) {
	r, ok := s.Selection()
	if !ok {
		if text == "" {
			return s, Diff(s, s)
		}
		r = Range{Start: s.cursor, End: s.cursor}
	}
	return s.Apply(TextEdit{Range: r, Text: text})
}

// DeleteSelection deletes the active selection, if any.
func (s State) DeleteSelection() (State, Change) {
	r, ok := s.Selection()
	if !ok {
		return s, Diff(s, s)
	}
	return s.Apply(TextEdit{Range: r})
}

// DeleteBackward applies backspace semantics.
func (s State) DeleteBackward() (State, Change) {
	if _, ok := s.Selection(); ok {
		return s.DeleteSelection()
	}
	row, col := s.cursor.Row, s.cursor.Col
	switch {
	case col > 0:
		return s.Apply(TextEdit{Range: Range{Start: Pos{Row: row, Col: col - 1}, End: s.cursor}})
	case row > 0:
		// Join with the previous block.
		return s.Apply(TextEdit{Range: Range{Start: Pos{Row: row - 1, Col: s.lineLen(row - 1)}, End: s.cursor}})
	}
	return s, Diff(s, s)
}

// DeleteForward applies delete-key semantics.
func (s State) DeleteForward() (State, Change) {
	if _, ok := s.Selection(); ok {
		return s.DeleteSelection()
	}
	row, col := s.cursor.Row, s.cursor.Col
	switch {
	case col < s.lineLen(row):
		return s.Apply(TextEdit{Range: Range{Start: s.cursor, End: Pos{Row: row, Col: col + 1}}})
	case row < len(s.blocks)-1:
		return s.Apply(TextEdit{Range: Range{Start: s.cursor, End: Pos{Row: row + 1, Col: 0}}})
	}
	return s, Diff(s, s)
}

// replaceRange rewrites the blocks covered by r. Callers must have detached
// the block slice.
func (s *State) replaceRange(r Range, text string) (next Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(s.blocks), s.lineLen))
	if r.IsEmpty() && text == "" {
		return s.cursor, AppliedEdit{}, false
	}
	deleted := s.textInRange(r)
	if deleted == text {
		return s.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col
	first, last := s.blocks[startRow], s.blocks[endRow]
	touched := s.entitiesInRange(r)
	inherit := s.inheritedEntity(r)

	prefixText := first.text[:startCol]
	prefixEnts := first.ents[:startCol]
	var prefixPins []pin
	for _, p := range first.pins {
		if p.col <= startCol {
			prefixPins = append(prefixPins, p)
		}
	}
	suffixText := last.text[endCol:]
	suffixEnts := last.ents[endCol:]
	var suffixPins []pin
	for _, p := range last.pins {
		if p.col > endCol || (p.col == endCol && !r.IsEmpty()) {
			suffixPins = append(suffixPins, pin{col: p.col - endCol, key: p.key})
		}
	}

	parts := strings.Split(text, "\n")
	repl := make([]block, 0, len(parts))
	for i, part := range parts {
		ins := []rune(part)
		insEnts := make([]string, len(ins))
		for j := range insEnts {
			insEnts[j] = inherit
		}
		var b block
		switch {
		case i == 0:
			b = block{key: first.key, typ: first.typ, depth: first.depth, data: first.data}
			b.text = append(append([]rune(nil), prefixText...), ins...)
			b.ents = append(append([]string(nil), prefixEnts...), insEnts...)
			b.pins = append([]pin(nil), prefixPins...)
		default:
			b = s.newBlock(append([]rune(nil), ins...))
			copy(b.ents, insEnts)
			if i == len(parts)-1 && endRow != startRow {
				b.key, b.typ, b.depth, b.data = last.key, last.typ, last.depth, last.data
			}
		}
		if i == len(parts)-1 {
			shift := len(b.text)
			next = Pos{Row: startRow + i, Col: shift}
			b.text = append(b.text, suffixText...)
			b.ents = append(b.ents, suffixEnts...)
			for _, p := range suffixPins {
				b.pins = append(b.pins, pin{col: p.col + shift, key: p.key})
			}
		}
		repl = append(repl, b)
	}

	out := make([]block, 0, len(s.blocks)-(endRow-startRow+1)+len(repl))
	out = append(out, s.blocks[:startRow]...)
	out = append(out, repl...)
	out = append(out, s.blocks[endRow+1:]...)
	s.blocks = out

	for key := range touched {
		if e, ok := s.entities[key]; ok && e.Mutability == Immutable {
			s.stripEntity(key)
		}
	}
	s.dropOrphans(touched)

	return next, AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: next},
		InsertText:  text,
		DeletedText: deleted,
	}, true
}

// inheritedEntity returns the entity that text inserted at a collapsed range
// joins: a MUTABLE entity covering the runes on both sides of the insertion
// point.
func (s State) inheritedEntity(r Range) string {
	if !r.IsEmpty() {
		return ""
	}
	b := s.blocks[r.Start.Row]
	col := r.Start.Col
	if col == 0 || col >= len(b.ents) {
		return ""
	}
	key := b.ents[col-1]
	if key == "" || key != b.ents[col] {
		return ""
	}
	if e, ok := s.entities[key]; !ok || e.Mutability != Mutable {
		return ""
	}
	return key
}

// entitiesInRange collects entities of deleted runes and of pins that a
// replacement of r would drop.
func (s State) entitiesInRange(r Range) map[string]struct{} {
	out := map[string]struct{}{}
	if r.IsEmpty() {
		return out
	}
	for row := r.Start.Row; row <= r.End.Row; row++ {
		b := s.blocks[row]
		from, to := 0, len(b.text)
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = r.End.Col
		}
		for _, key := range b.ents[from:to] {
			if key != "" {
				out[key] = struct{}{}
			}
		}
		for _, p := range b.pins {
			keptBefore := row == r.Start.Row && p.col <= r.Start.Col
			keptAfter := row == r.End.Row && p.col >= r.End.Col
			if !keptBefore && !keptAfter {
				out[p.key] = struct{}{}
			}
		}
	}
	return out
}

func (s State) textInRange(r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return string(s.blocks[r.Start.Row].text[r.Start.Col:r.End.Col])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row > r.Start.Row {
			sb.WriteByte('\n')
		}
		text := s.blocks[row].text
		from, to := 0, len(text)
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = r.End.Col
		}
		sb.WriteString(string(text[from:to]))
	}
	return sb.String()
}
