package archivefs

// EntryTable is an insertion-ordered mapping from canonical path to
// CovariantEntry. Iteration (Paths) yields paths in the order they were
// added; a path that is removed and then added again moves to the end.
type EntryTable struct {
	entries map[string]*CovariantEntry
	order   []string
}

// newEntryTable creates an empty entry table.
func newEntryTable() *EntryTable {
	return &EntryTable{
		entries: make(map[string]*CovariantEntry),
	}
}

// Add finds or creates the covariant wrapper at path and stores entry under
// its type. It returns the wrapper and whether this path was newly added to
// the table (as opposed to an existing wrapper gaining a new variant).
func (t *EntryTable) Add(path string, kind EntryType, entry ArchiveEntry) (wrapper *CovariantEntry, newPath bool) {
	wrapper, ok := t.entries[path]
	if !ok {
		wrapper = newCovariantEntry(path)
		t.entries[path] = wrapper
		t.order = append(t.order, path)
		newPath = true
	}
	wrapper.Put(kind, entry)
	return wrapper, newPath
}

// Get returns the covariant wrapper at path, if present.
func (t *EntryTable) Get(path string) (*CovariantEntry, bool) {
	wrapper, ok := t.entries[path]
	return wrapper, ok
}

// Remove removes the wrapper at path from the table.
func (t *EntryTable) Remove(path string) {
	if _, ok := t.entries[path]; !ok {
		return
	}
	delete(t.entries, path)
	for i, p := range t.order {
		if p == path {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of paths currently in the table.
func (t *EntryTable) Len() int {
	return len(t.entries)
}

// Paths returns the table's paths in insertion order. The returned slice is
// a copy.
func (t *EntryTable) Paths() []string {
	result := make([]string, len(t.order))
	copy(result, t.order)
	return result
}
