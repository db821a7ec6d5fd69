package content

import (
	"slices"
)

// AppliedEdit describes one effective edit in a change.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
//
// RemovedEntities lists entity keys present in the entity map before the
// change and absent after it, in sorted order. Holders of per-entity state
// use it to release that state.
type Change struct {
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	AppliedEdits    []AppliedEdit
	RemovedEntities []string
}

// Changed reports whether the change produced a new version.
func (c Change) Changed() bool { return c.VersionAfter != c.VersionBefore }

// Diff builds a Change between two states without edit details.
func Diff(before, after State) Change {
	return Change{
		VersionBefore:   before.version,
		VersionAfter:    after.version,
		CursorBefore:    before.cursor,
		CursorAfter:     after.cursor,
		RemovedEntities: removedEntities(before, after),
	}
}

func removedEntities(before, after State) []string {
	var out []string
	for key := range before.entities {
		if _, ok := after.entities[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}
