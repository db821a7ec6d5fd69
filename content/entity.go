package content

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Mutability controls how an entity reacts to edits of its text.
type Mutability string

const (
	// Mutable entities survive partial edits and may be removed as a unit.
	Mutable Mutability = "MUTABLE"
	// Immutable entities are stripped whole when any of their text is deleted.
	Immutable Mutability = "IMMUTABLE"
	// Segmented entities are kept for round trips; edits treat them like
	// Mutable ones.
	Segmented Mutability = "SEGMENTED"
)

// Entity is one entry of the entity map.
//
// Data is a creation-time payload; it is stored and serialized but never
// interpreted by this package.
type Entity struct {
	Type       string
	Mutability Mutability
	Data       map[string]any
}

// Occurrence is one contiguous run of an entity within a block, or a
// zero-width pin (StartCol == EndCol).
type Occurrence struct {
	EntityKey string
	Row       int
	StartCol  int
	EndCol    int
}

func (o Occurrence) IsPin() bool { return o.StartCol == o.EndCol }

// CreateEntity adds an entity to the entity map and returns its key.
// The entity has no occurrences until ApplyEntity is called.
func (s State) CreateEntity(typ string, mut Mutability, data map[string]any) (State, string) {
	key := s.keys()
	s.mutableEntities()
	s.entities[key] = Entity{Type: typ, Mutability: mut, Data: maps.Clone(data)}
	s.lastKey = key
	s.touch()
	return s, key
}

// LastCreatedEntityKey returns the key returned by the most recent
// CreateEntity call that produced this State.
func (s State) LastCreatedEntityKey() string { return s.lastKey }

func (s State) Entity(key string) (Entity, bool) {
	e, ok := s.entities[key]
	return e, ok
}

// EntityKeys returns all keys of the entity map in sorted order.
func (s State) EntityKeys() []string {
	return slices.Sorted(maps.Keys(s.entities))
}

// ApplyEntity attaches key to the runes in r. An empty range places a
// zero-width pin at r.Start. Runes already carrying another entity are
// overwritten; an entity that loses its last occurrence this way is dropped
// from the entity map.
func (s State) ApplyEntity(r Range, key string) (State, error) {
	if _, ok := s.entities[key]; !ok {
		return s, fmt.Errorf("apply %q: %w", key, ErrUnknownEntity)
	}
	r = NormalizeRange(ClampRange(r, len(s.blocks), s.lineLen))
	s.mutableBlocks()

	if r.IsEmpty() {
		b := s.blocks[r.Start.Row].clone()
		for _, p := range b.pins {
			if p.col == r.Start.Col && p.key == key {
				return s, nil
			}
		}
		b.pins = append(b.pins, pin{col: r.Start.Col, key: key})
		sortPins(b.pins)
		s.blocks[r.Start.Row] = b
		s.touch()
		return s, nil
	}

	overwritten := map[string]struct{}{}
	for row := r.Start.Row; row <= r.End.Row; row++ {
		b := s.blocks[row].clone()
		start, end := 0, len(b.text)
		if row == r.Start.Row {
			start = r.Start.Col
		}
		if row == r.End.Row {
			end = r.End.Col
		}
		for col := start; col < end; col++ {
			if prev := b.ents[col]; prev != "" && prev != key {
				overwritten[prev] = struct{}{}
			}
			b.ents[col] = key
		}
		s.blocks[row] = b
	}
	s.dropOrphans(overwritten)
	s.touch()
	return s, nil
}

// ApplyEntityOverSelection applies key over the current selection, or as a
// zero-width pin at the cursor when nothing is selected.
func (s State) ApplyEntityOverSelection(key string) (State, error) {
	r, ok := s.Selection()
	if !ok {
		r = Range{Start: s.cursor, End: s.cursor}
	}
	return s.ApplyEntity(r, key)
}

// RemoveEntity strips every occurrence of key and drops it from the entity
// map. The text the entity spanned is kept.
func (s State) RemoveEntity(key string) (State, Change) {
	before := s
	if _, ok := s.entities[key]; !ok {
		return s, Change{VersionBefore: s.version, VersionAfter: s.version, CursorBefore: s.cursor, CursorAfter: s.cursor}
	}
	s.mutableBlocks()
	s.stripEntity(key)
	s.mutableEntities()
	delete(s.entities, key)
	s.touch()
	return s, Diff(before, s)
}

// stripEntity clears key from runes and pins. Callers must have detached the
// block slice.
func (s *State) stripEntity(key string) {
	for i := range s.blocks {
		if !s.blocks[i].has(key) {
			continue
		}
		b := s.blocks[i].clone()
		for col := range b.ents {
			if b.ents[col] == key {
				b.ents[col] = ""
			}
		}
		b.pins = slices.DeleteFunc(b.pins, func(p pin) bool { return p.key == key })
		s.blocks[i] = b
	}
}

func (b block) has(key string) bool {
	if slices.Contains(b.ents, key) {
		return true
	}
	for _, p := range b.pins {
		if p.key == key {
			return true
		}
	}
	return false
}

// dropOrphans removes candidate entities that no longer occur anywhere.
func (s *State) dropOrphans(candidates map[string]struct{}) {
	if len(candidates) == 0 {
		return
	}
	var gone []string
	for key := range candidates {
		if !s.occurs(key) {
			gone = append(gone, key)
		}
	}
	if len(gone) == 0 {
		return
	}
	s.mutableEntities()
	for _, key := range gone {
		delete(s.entities, key)
	}
}

func (s State) occurs(key string) bool {
	for _, b := range s.blocks {
		if b.has(key) {
			return true
		}
	}
	return false
}

// EntityAt returns the entity attached to the rune at p, if any.
func (s State) EntityAt(p Pos) (string, bool) {
	if p.Row < 0 || p.Row >= len(s.blocks) {
		return "", false
	}
	b := s.blocks[p.Row]
	if p.Col < 0 || p.Col >= len(b.ents) || b.ents[p.Col] == "" {
		return "", false
	}
	return b.ents[p.Col], true
}

// Occurrences returns the entity runs and pins of one block in column order.
// A pin sorts before a run starting at the same column.
func (s State) Occurrences(row int) []Occurrence {
	if row < 0 || row >= len(s.blocks) {
		return nil
	}
	b := s.blocks[row]

	var out []Occurrence
	for col := 0; col < len(b.ents); {
		key := b.ents[col]
		if key == "" {
			col++
			continue
		}
		end := col + 1
		for end < len(b.ents) && b.ents[end] == key {
			end++
		}
		out = append(out, Occurrence{EntityKey: key, Row: row, StartCol: col, EndCol: end})
		col = end
	}
	for _, p := range b.pins {
		out = append(out, Occurrence{EntityKey: p.key, Row: row, StartCol: p.col, EndCol: p.col})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartCol != out[j].StartCol {
			return out[i].StartCol < out[j].StartCol
		}
		return out[i].IsPin() && !out[j].IsPin()
	})
	return out
}

func sortPins(pins []pin) {
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].col < pins[j].col })
}
