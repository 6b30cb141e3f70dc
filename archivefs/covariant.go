package archivefs

// CovariantEntry bundles the (at most one per type) archive entries present
// at a single canonical path together with that path's directory membership.
// A single path may hold both a FILE and a DIRECTORY variant simultaneously
// (an archive may legitimately contain both "foo" and "foo/"); the
// filesystem view picks the variant matching the caller's requested type.
type CovariantEntry struct {
	path      string
	variants  map[EntryType]ArchiveEntry
	members   []string
	memberSet map[string]struct{}
}

// newCovariantEntry creates an empty covariant wrapper for path.
func newCovariantEntry(path string) *CovariantEntry {
	return &CovariantEntry{
		path:      path,
		variants:  make(map[EntryType]ArchiveEntry),
		memberSet: make(map[string]struct{}),
	}
}

// Path returns the canonical path this covariant entry occupies.
func (c *CovariantEntry) Path() string {
	return c.path
}

// Put stores entry as the variant for kind, replacing any existing variant
// of that kind.
func (c *CovariantEntry) Put(kind EntryType, entry ArchiveEntry) {
	c.variants[kind] = entry
}

// Get returns the variant for kind, if present.
func (c *CovariantEntry) Get(kind EntryType) (ArchiveEntry, bool) {
	entry, ok := c.variants[kind]
	return entry, ok
}

// IsType reports whether a variant of kind is present.
func (c *CovariantEntry) IsType(kind EntryType) bool {
	_, ok := c.variants[kind]
	return ok
}

// Any returns any one present variant, preferring FILE, matching the
// commit-time convention of touching the file variant when both a file and
// a directory exist at the same path.
func (c *CovariantEntry) Any() (ArchiveEntry, bool) {
	if entry, ok := c.variants[EntryTypeFile]; ok {
		return entry, true
	}
	for _, entry := range c.variants {
		return entry, true
	}
	return nil, false
}

// Members returns the directory's member names in insertion order. The
// returned slice is a copy; callers may not mutate the live tree through it.
func (c *CovariantEntry) Members() []string {
	result := make([]string, len(c.members))
	copy(result, c.members)
	return result
}

// Add records member as present in this directory's member set. It returns
// true if the member set genuinely grew (member was not already present).
func (c *CovariantEntry) Add(member string) bool {
	if _, ok := c.memberSet[member]; ok {
		return false
	}
	c.memberSet[member] = struct{}{}
	c.members = append(c.members, member)
	return true
}

// Remove removes member from this directory's member set. It returns true
// if the member was present.
func (c *CovariantEntry) Remove(member string) bool {
	if _, ok := c.memberSet[member]; !ok {
		return false
	}
	delete(c.memberSet, member)
	for i, name := range c.members {
		if name == member {
			c.members = append(c.members[:i], c.members[i+1:]...)
			break
		}
	}
	return true
}

// Clone produces a defensive copy of this covariant entry: the variant map
// and member set are copied so that mutating the clone's structure (adding
// members, swapping variants) cannot affect the live table, but the
// ArchiveEntry values themselves are shared by reference with the driver's
// underlying container, since their times and sizes are the driver's data,
// not this package's.
func (c *CovariantEntry) Clone() *CovariantEntry {
	clone := newCovariantEntry(c.path)
	for kind, entry := range c.variants {
		clone.variants[kind] = entry
	}
	clone.members = append([]string(nil), c.members...)
	for _, member := range c.members {
		clone.memberSet[member] = struct{}{}
	}
	return clone
}
