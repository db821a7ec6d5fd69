package field

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// EntityType describes how one entity type is presented.
type EntityType struct {
	Type        string
	Label       string
	Description string
	// Style for runs of this type; nil renders them as plain text.
	Style *lipgloss.Style
}

// Plugins registers client-side entity type definitions by type.
type Plugins struct {
	byType map[string]EntityType
}

func NewPlugins() *Plugins {
	return &Plugins{byType: map[string]EntityType{}}
}

// Register adds or replaces the definition for t.Type.
func (p *Plugins) Register(t EntityType) *Plugins {
	p.byType[t.Type] = t
	return p
}

func (p *Plugins) Lookup(typ string) (EntityType, bool) {
	if p == nil {
		return EntityType{}, false
	}
	t, ok := p.byType[typ]
	return t, ok
}

// Types returns the registered type names in sorted order.
func (p *Plugins) Types() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.byType))
	for typ := range p.byType {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// Resolve merges each configured type over its registered plugin. Fields
// set in the configuration win; empty ones fall back to the plugin.
func (p *Plugins) Resolve(configured []EntityType) []EntityType {
	out := make([]EntityType, 0, len(configured))
	for _, c := range configured {
		base, ok := p.Lookup(c.Type)
		if !ok {
			out = append(out, c)
			continue
		}
		if c.Label != "" {
			base.Label = c.Label
		}
		if c.Description != "" {
			base.Description = c.Description
		}
		if c.Style != nil {
			base.Style = c.Style
		}
		out = append(out, base)
	}
	return out
}
