package content

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Block type used for blocks created by editing.
const BlockUnstyled = "unstyled"

// KeyFunc generates entity and block keys.
type KeyFunc func() string

// DefaultKeyFunc returns a random UUID string.
func DefaultKeyFunc() string { return uuid.NewString() }

type options struct {
	keys KeyFunc
}

// Option configures a State created by New, FromRaw or Parse.
type Option func(*options)

// WithKeyFunc overrides how entity and block keys are generated.
func WithKeyFunc(fn KeyFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.keys = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{keys: DefaultKeyFunc}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type pin struct {
	col int
	key string
}

type block struct {
	key   string
	typ   string
	depth int
	text  []rune
	ents  []string // one entry per rune; "" means no entity
	pins  []pin    // zero-width occurrences, sorted by col
	data  map[string]any
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// State is an immutable snapshot of the document content.
//
// The zero value is not usable; construct with New, FromRaw or Parse.
type State struct {
	blocks   []block
	entities map[string]Entity
	cursor   Pos
	sel      selectionState
	version  uint64
	rev      uint64 // unique per snapshot, never reused
	lastKey  string
	keys     KeyFunc
}

// New returns a State holding text, one block per line, with no entities.
func New(text string, opts ...Option) State {
	o := buildOptions(opts)
	s := State{
		entities: map[string]Entity{},
		keys:     o.keys,
		rev:      nextRev(),
	}
	for _, line := range strings.Split(text, "\n") {
		s.blocks = append(s.blocks, s.newBlock([]rune(line)))
	}
	return s
}

func (s State) newBlock(text []rune) block {
	return block{
		key:  blockKey(s.keys()),
		typ:  BlockUnstyled,
		text: text,
		ents: make([]string, len(text)),
	}
}

// blockKey shortens generated keys; block keys only need to be unique
// within one document.
func blockKey(k string) string {
	k = strings.ReplaceAll(k, "-", "")
	if len(k) > 8 {
		return k[:8]
	}
	return k
}

// Text returns the document text with blocks joined by '\n'.
func (s State) Text() string {
	var sb strings.Builder
	for i, b := range s.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(b.text))
	}
	return sb.String()
}

// BlockCount returns the number of blocks (logical lines).
func (s State) BlockCount() int { return len(s.blocks) }

// Line returns the text of one block, or "" when row is out of range.
func (s State) Line(row int) string {
	if row < 0 || row >= len(s.blocks) {
		return ""
	}
	return string(s.blocks[row].text)
}

// BlockKey returns the key of the block at row.
func (s State) BlockKey(row int) string {
	if row < 0 || row >= len(s.blocks) {
		return ""
	}
	return s.blocks[row].key
}

// Version increases on every effective change.
// Version counts effective changes since the state was built. Unrelated
// states may share a version; use Same to compare snapshots.
func (s State) Version() uint64 { return s.version }

var revs atomic.Uint64

func nextRev() uint64 { return revs.Add(1) }

// touch marks s as a new snapshot.
func (s *State) touch() {
	s.version++
	s.rev = nextRev()
}

// Same reports whether s and o are the same snapshot: o was derived from s
// (or s from o) by operations that changed nothing.
func (s State) Same(o State) bool { return s.rev == o.rev }

func (s State) Cursor() Pos { return s.cursor }

func (s State) Selection() (Range, bool) {
	if !s.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: s.sel.anchor, End: s.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// WithCursor moves the cursor and clears the selection.
func (s State) WithCursor(p Pos) State {
	next := s.clampPos(p)
	if next == s.cursor && !s.sel.active {
		return s
	}
	s.cursor = next
	s.sel = selectionState{}
	s.touch()
	return s
}

// WithSelection selects r; the cursor moves to r.End.
func (s State) WithSelection(r Range) State {
	clamped := ClampRange(r, len(s.blocks), s.lineLen)
	if clamped.IsEmpty() {
		return s.WithCursor(clamped.End)
	}
	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if next == s.sel && s.cursor == clamped.End {
		return s
	}
	s.sel = next
	s.cursor = clamped.End
	s.touch()
	return s
}

func (s State) lineLen(row int) int {
	if row < 0 || row >= len(s.blocks) {
		return 0
	}
	return len(s.blocks[row].text)
}

func (s State) clampPos(p Pos) Pos {
	return ClampPos(p, len(s.blocks), s.lineLen)
}

func (b block) clone() block {
	out := b
	out.text = append([]rune(nil), b.text...)
	out.ents = append([]string(nil), b.ents...)
	out.pins = append([]pin(nil), b.pins...)
	return out
}

// mutableBlocks detaches the block slice from any State sharing it.
func (s *State) mutableBlocks() {
	s.blocks = append([]block(nil), s.blocks...)
}

func (s *State) mutableEntities() {
	next := make(map[string]Entity, len(s.entities))
	for k, v := range s.entities {
		next[k] = v
	}
	s.entities = next
}
