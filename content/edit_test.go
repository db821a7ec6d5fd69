package content

import (
	"reflect"
	"testing"
)

func commentOver(t *testing.T, s State, r Range, mut Mutability) (State, string) {
	t.Helper()
	s, key := s.CreateEntity("COMMENT", mut, nil)
	s, err := s.ApplyEntity(r, key)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return s, key
}

func TestInsertText_ShiftsEntityRuns(t *testing.T) {
	s := newTestState("hello world")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 6}, End: Pos{Col: 11}}, Mutable)

	s = s.WithCursor(Pos{Col: 0})
	s, ch := s.InsertText(">> ")
	if !ch.Changed() || len(ch.AppliedEdits) != 1 {
		t.Fatalf("change=%+v", ch)
	}
	want := []Occurrence{{EntityKey: key, Row: 0, StartCol: 9, EndCol: 14}}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
	if got := s.Cursor(); got != (Pos{Col: 3}) {
		t.Fatalf("cursor=%v", got)
	}
}

func TestInsertText_InsideMutableRunExtendsEntity(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 0}, End: Pos{Col: 4}}, Mutable)
	s = s.WithCursor(Pos{Col: 2})
	s, _ = s.InsertText("XY")

	want := []Occurrence{{EntityKey: key, Row: 0, StartCol: 0, EndCol: 6}}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestInsertText_AtRunEdgeDoesNotExtendEntity(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 1}, End: Pos{Col: 3}}, Mutable)
	s = s.WithCursor(Pos{Col: 3})
	s, _ = s.InsertText("X")

	want := []Occurrence{{EntityKey: key, Row: 0, StartCol: 1, EndCol: 3}}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestInsertText_InsideImmutableRunSplitsIt(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 0}, End: Pos{Col: 4}}, Immutable)
	s = s.WithCursor(Pos{Col: 2})
	s, _ = s.InsertText("X")

	want := []Occurrence{
		{EntityKey: key, Row: 0, StartCol: 0, EndCol: 2},
		{EntityKey: key, Row: 0, StartCol: 3, EndCol: 5},
	}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestInsertNewline_SplitsRunAcrossBlocks(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 1}, End: Pos{Col: 3}}, Mutable)
	s = s.WithCursor(Pos{Col: 2})
	s, _ = s.InsertText("\n")

	if s.Text() != "ab\ncd" {
		t.Fatalf("text=%q", s.Text())
	}
	got := append(s.Occurrences(0), s.Occurrences(1)...)
	want := []Occurrence{
		{EntityKey: key, Row: 0, StartCol: 1, EndCol: 2},
		{EntityKey: key, Row: 1, StartCol: 0, EndCol: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
	if s.Cursor() != (Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor=%v", s.Cursor())
	}
}

func TestDeleteSelection_ReportsRemovedEntity(t *testing.T) {
	s := newTestState("keep this gone")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 10}, End: Pos{Col: 14}}, Mutable)

	s = s.WithSelection(Range{Start: Pos{Col: 9}, End: Pos{Col: 14}})
	s, ch := s.DeleteSelection()
	if s.Text() != "keep this" {
		t.Fatalf("text=%q", s.Text())
	}
	if !reflect.DeepEqual(ch.RemovedEntities, []string{key}) {
		t.Fatalf("removed=%v, want [%s]", ch.RemovedEntities, key)
	}
	if _, ok := s.Entity(key); ok {
		t.Fatalf("entity must leave the entity map")
	}
}

func TestDeleteBackward_PartialMutableSurvives(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 0}, End: Pos{Col: 4}}, Mutable)
	s = s.WithCursor(Pos{Col: 4})
	s, ch := s.DeleteBackward()

	if len(ch.RemovedEntities) != 0 {
		t.Fatalf("removed=%v", ch.RemovedEntities)
	}
	want := []Occurrence{{EntityKey: key, Row: 0, StartCol: 0, EndCol: 3}}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestDeleteBackward_PartialImmutableStrippedWhole(t *testing.T) {
	s := newTestState("abcd")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 0}, End: Pos{Col: 4}}, Immutable)
	s = s.WithCursor(Pos{Col: 4})
	s, ch := s.DeleteBackward()

	if s.Text() != "abc" {
		t.Fatalf("text=%q", s.Text())
	}
	if !reflect.DeepEqual(ch.RemovedEntities, []string{key}) {
		t.Fatalf("removed=%v", ch.RemovedEntities)
	}
	if occ := s.Occurrences(0); len(occ) != 0 {
		t.Fatalf("occurrences=%v", occ)
	}
}

func TestDeleteForward_JoinsBlocksAndShiftsPins(t *testing.T) {
	s := newTestState("ab\ncd")
	s, key := commentOver(t, s, Range{Start: Pos{Row: 1, Col: 1}, End: Pos{Row: 1, Col: 1}}, Mutable)
	s = s.WithCursor(Pos{Row: 0, Col: 2})
	s, _ = s.DeleteForward()

	if s.Text() != "abcd" {
		t.Fatalf("text=%q", s.Text())
	}
	want := []Occurrence{{EntityKey: key, Row: 0, StartCol: 3, EndCol: 3}}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestApply_DropsPinInsideDeletion(t *testing.T) {
	s := newTestState("abcdef")
	s, key := commentOver(t, s, Range{Start: Pos{Col: 3}, End: Pos{Col: 3}}, Mutable)

	s, ch := s.Apply(TextEdit{Range: Range{Start: Pos{Col: 1}, End: Pos{Col: 5}}, Text: "Z"})
	if s.Text() != "aZf" {
		t.Fatalf("text=%q", s.Text())
	}
	if !reflect.DeepEqual(ch.RemovedEntities, []string{key}) {
		t.Fatalf("removed=%v", ch.RemovedEntities)
	}
}

func TestApply_PinAtBoundariesKept(t *testing.T) {
	s := newTestState("abcdef")
	s, left := commentOver(t, s, Range{Start: Pos{Col: 1}, End: Pos{Col: 1}}, Mutable)
	s, right := commentOver(t, s, Range{Start: Pos{Col: 4}, End: Pos{Col: 4}}, Mutable)

	s, ch := s.Apply(TextEdit{Range: Range{Start: Pos{Col: 1}, End: Pos{Col: 4}}})
	if len(ch.RemovedEntities) != 0 {
		t.Fatalf("removed=%v", ch.RemovedEntities)
	}
	want := []Occurrence{
		{EntityKey: left, Row: 0, StartCol: 1, EndCol: 1},
		{EntityKey: right, Row: 0, StartCol: 1, EndCol: 1},
	}
	if got := s.Occurrences(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("occurrences=%v, want %v", got, want)
	}
}

func TestApply_NoopEditKeepsVersion(t *testing.T) {
	s := newTestState("abc")
	next, ch := s.Apply(TextEdit{Range: Range{Start: Pos{Col: 0}, End: Pos{Col: 1}}, Text: "a"})
	if ch.Changed() || next.Version() != s.Version() {
		t.Fatalf("identical replacement must be a no-op")
	}
}
