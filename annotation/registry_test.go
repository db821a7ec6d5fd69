package annotation

import (
	"slices"
	"testing"

	"github.com/iw2rmb/marginalia/content"
)

func TestRegistry_LookupReturnsCreatedHandle(t *testing.T) {
	reg := New(NewAnchorTable())
	keys := []string{"a", "b", "c"}
	created := map[string]*Handle{}
	for _, k := range keys {
		created[k] = reg.Create(k, Accessors{})
	}

	for _, k := range keys {
		got, ok := reg.Lookup(k)
		if !ok || got != created[k] {
			t.Fatalf("lookup %q: got (%p,%v), want %p", k, got, ok, created[k])
		}
		if got.Key() != k {
			t.Fatalf("key: got %q, want %q", got.Key(), k)
		}
	}
	if got := reg.Keys(); !slices.Equal(got, keys) {
		t.Fatalf("keys: got %v, want %v", got, keys)
	}
}

func TestRegistry_LookupMissIsNormal(t *testing.T) {
	reg := New(NewAnchorTable())
	if h, ok := reg.Lookup("stale"); ok || h != nil {
		t.Fatalf("lookup miss: got (%v,%v), want (nil,false)", h, ok)
	}
}

func TestRegistry_CreateOverwrites(t *testing.T) {
	reg := New(NewAnchorTable())
	first := reg.Create("e2", Accessors{})
	second := reg.Create("e2", Accessors{})

	got, ok := reg.Lookup("e2")
	if !ok || got != second || got == first {
		t.Fatalf("lookup after overwrite: got (%p,%v), want %p", got, ok, second)
	}
	if reg.Len() != 1 {
		t.Fatalf("len: got %d, want 1", reg.Len())
	}
}

func TestRegistry_RemoveAndSync(t *testing.T) {
	reg := New(NewAnchorTable())
	reg.Create("a", Accessors{})
	reg.Create("b", Accessors{})
	reg.Create("c", Accessors{})

	if !reg.Remove("a") {
		t.Fatalf("first remove of a: got false")
	}
	if reg.Remove("a") {
		t.Fatalf("second remove of a: got true")
	}

	if n := reg.Sync(content.Change{RemovedEntities: []string{"b", "missing"}}); n != 1 {
		t.Fatalf("sync removed %d, want 1", n)
	}
	if got := reg.Keys(); !slices.Equal(got, []string{"c"}) {
		t.Fatalf("keys: got %v, want [c]", got)
	}
}

func TestRegistry_SyncFromDocumentEdit(t *testing.T) {
	s := content.New("drop me")
	s, key := s.CreateEntity("COMMENT", content.Mutable, nil)
	s, err := s.ApplyEntity(content.Range{End: content.Pos{Col: 4}}, key)
	if err != nil {
		t.Fatalf("ApplyEntity: %v", err)
	}

	reg := New(NewAnchorTable())
	reg.Create(key, Accessors{})

	s = s.WithSelection(content.Range{End: content.Pos{Col: 5}})
	_, ch := s.DeleteSelection()
	if n := reg.Sync(ch); n != 1 {
		t.Fatalf("sync removed %d, want 1", n)
	}
	if _, ok := reg.Lookup(key); ok {
		t.Fatalf("handle %q survived deletion of its text", key)
	}
}
