package content

import (
	"errors"
	"fmt"
	"maps"

	json "github.com/goccy/go-json"
)

// Raw is the serializable content tree.
//
// Entity range offsets and lengths count runes. A range with Length 0 is a
// zero-width pin.
type Raw struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

type RawBlock struct {
	Key          string           `json:"key"`
	Text         string           `json:"text"`
	Type         string           `json:"type"`
	Depth        int              `json:"depth"`
	EntityRanges []RawEntityRange `json:"entityRanges"`
	Data         map[string]any   `json:"data,omitempty"`
}

type RawEntityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Key    string `json:"key"`
}

type RawEntity struct {
	Type       string         `json:"type"`
	Mutability Mutability     `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// Raw converts the state into its serializable tree.
func (s State) Raw() Raw {
	raw := Raw{
		Blocks:    make([]RawBlock, 0, len(s.blocks)),
		EntityMap: make(map[string]RawEntity, len(s.entities)),
	}
	for row, b := range s.blocks {
		rb := RawBlock{
			Key:          b.key,
			Text:         string(b.text),
			Type:         b.typ,
			Depth:        b.depth,
			EntityRanges: []RawEntityRange{},
			Data:         maps.Clone(b.data),
		}
		for _, occ := range s.Occurrences(row) {
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{
				Offset: occ.StartCol,
				Length: occ.EndCol - occ.StartCol,
				Key:    occ.EntityKey,
			})
		}
		raw.Blocks = append(raw.Blocks, rb)
	}
	for key, e := range s.entities {
		data := maps.Clone(e.Data)
		if data == nil {
			data = map[string]any{}
		}
		raw.EntityMap[key] = RawEntity{Type: e.Type, Mutability: e.Mutability, Data: data}
	}
	return raw
}

// FromRaw loads a State from its serializable tree. It fails on blocks
// missing, entity ranges outside their block, and ranges naming keys absent
// from the entity map.
func FromRaw(raw Raw, opts ...Option) (State, error) {
	o := buildOptions(opts)
	if len(raw.Blocks) == 0 {
		return State{}, fmt.Errorf("%w: no blocks", ErrMalformedContent)
	}

	s := State{
		entities: make(map[string]Entity, len(raw.EntityMap)),
		keys:     o.keys,
		rev:      nextRev(),
	}
	for key, e := range raw.EntityMap {
		if key == "" {
			return State{}, fmt.Errorf("%w: empty entity key", ErrMalformedContent)
		}
		mut := e.Mutability
		if mut == "" {
			mut = Mutable
		}
		s.entities[key] = Entity{Type: e.Type, Mutability: mut, Data: maps.Clone(e.Data)}
	}

	seen := make(map[string]struct{}, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		b := block{
			key:   rb.Key,
			typ:   rb.Type,
			depth: rb.Depth,
			text:  []rune(rb.Text),
			data:  maps.Clone(rb.Data),
		}
		if b.key == "" {
			b.key = blockKey(o.keys())
		}
		if _, dup := seen[b.key]; dup {
			return State{}, fmt.Errorf("%w: duplicate block key %q", ErrMalformedContent, b.key)
		}
		seen[b.key] = struct{}{}
		if b.typ == "" {
			b.typ = BlockUnstyled
		}
		b.ents = make([]string, len(b.text))

		for _, er := range rb.EntityRanges {
			if _, ok := s.entities[er.Key]; !ok {
				return State{}, fmt.Errorf("%w: block %d: entity range names unknown key %q", ErrMalformedContent, i, er.Key)
			}
			if er.Offset < 0 || er.Length < 0 || er.Offset+er.Length > len(b.text) {
				return State{}, fmt.Errorf("%w: block %d: entity range [%d,+%d) outside text of length %d",
					ErrMalformedContent, i, er.Offset, er.Length, len(b.text))
			}
			if er.Length == 0 {
				b.pins = append(b.pins, pin{col: er.Offset, key: er.Key})
				continue
			}
			for col := er.Offset; col < er.Offset+er.Length; col++ {
				b.ents[col] = er.Key
			}
		}
		sortPins(b.pins)
		s.blocks = append(s.blocks, b)
	}
	return s, nil
}

// Parse decodes serialized content and loads it with FromRaw.
func Parse(data []byte, opts ...Option) (State, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}
	s, err := FromRaw(raw, opts...)
	if err != nil {
		return State{}, err
	}
	return s, nil
}

// Marshal serializes the state's raw tree.
func Marshal(s State) ([]byte, error) {
	if len(s.blocks) == 0 {
		return nil, errors.New("content: marshal of zero State")
	}
	return json.Marshal(s.Raw())
}
