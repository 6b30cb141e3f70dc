package archivefs

import (
	"reflect"
	"testing"
)

func TestEntryTableInsertionOrder(t *testing.T) {
	table := newEntryTable()
	table.Add("c", EntryTypeFile, newTestEntry("c", EntryTypeFile))
	table.Add("a", EntryTypeFile, newTestEntry("a", EntryTypeFile))
	table.Add("b", EntryTypeFile, newTestEntry("b", EntryTypeFile))

	want := []string{"c", "a", "b"}
	if got := table.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}

	table.Remove("a")
	table.Add("a", EntryTypeFile, newTestEntry("a", EntryTypeFile))
	want = []string{"c", "b", "a"}
	if got := table.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() after remove/re-add = %v, want %v", got, want)
	}
}

func TestEntryTableAddReportsNewPath(t *testing.T) {
	table := newEntryTable()
	_, newPath := table.Add("x", EntryTypeFile, newTestEntry("x", EntryTypeFile))
	if !newPath {
		t.Error("first Add reported newPath = false")
	}
	_, newPath = table.Add("x", EntryTypeDirectory, newTestEntry("x", EntryTypeDirectory))
	if newPath {
		t.Error("second Add to same path reported newPath = true")
	}
	if got := table.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestCovariantEntryVariants(t *testing.T) {
	entry := newCovariantEntry("foo")
	file := newTestEntry("foo", EntryTypeFile)
	dir := newTestEntry("foo", EntryTypeDirectory)
	entry.Put(EntryTypeFile, file)
	entry.Put(EntryTypeDirectory, dir)

	if !entry.IsType(EntryTypeFile) || !entry.IsType(EntryTypeDirectory) {
		t.Fatal("expected both variants present")
	}
	if got, _ := entry.Any(); got != file {
		t.Error("Any() did not prefer the FILE variant")
	}
}

func TestCovariantEntryMembers(t *testing.T) {
	entry := newCovariantEntry("dir")
	if !entry.Add("a") {
		t.Error("Add(\"a\") = false on first add")
	}
	if entry.Add("a") {
		t.Error("Add(\"a\") = true on duplicate add")
	}
	entry.Add("b")
	if !reflect.DeepEqual(entry.Members(), []string{"a", "b"}) {
		t.Errorf("Members() = %v, want [a b]", entry.Members())
	}
	if !entry.Remove("a") {
		t.Error("Remove(\"a\") = false, want true")
	}
	if !reflect.DeepEqual(entry.Members(), []string{"b"}) {
		t.Errorf("Members() after remove = %v, want [b]", entry.Members())
	}
}

func TestCovariantEntryCloneIsIndependent(t *testing.T) {
	entry := newCovariantEntry("dir")
	entry.Add("a")
	entry.Put(EntryTypeDirectory, newTestEntry("dir", EntryTypeDirectory))

	clone := entry.Clone()
	clone.Add("b")

	if len(entry.Members()) != 1 {
		t.Errorf("mutating clone's members affected original: %v", entry.Members())
	}
	if len(clone.Members()) != 2 {
		t.Errorf("clone Members() = %v, want 2 entries", clone.Members())
	}
}
