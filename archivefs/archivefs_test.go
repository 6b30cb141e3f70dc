package archivefs

// Shared test fixtures used across this package's table-driven tests:
// a minimal in-memory ArchiveEntry/ArchiveDriver/EntryContainer triple, in
// the spirit of the small fixture entries the teacher's synchronization
// core tests build inline (see pkg/synchronization/core/apply_test.go).

type testEntry struct {
	name  string
	kind  EntryType
	times [3]int64
	sizes [2]int64
}

func newTestEntry(name string, kind EntryType) *testEntry {
	return &testEntry{
		name:  name,
		kind:  kind,
		times: [3]int64{Unknown, Unknown, Unknown},
		sizes: [2]int64{Unknown, Unknown},
	}
}

func (e *testEntry) Name() string { return e.name }
func (e *testEntry) Type() EntryType { return e.kind }

func (e *testEntry) Time(kind AccessKind) int64 {
	if int(kind) >= len(e.times) {
		return Unknown
	}
	return e.times[kind]
}

func (e *testEntry) SetTime(kind AccessKind, value int64) bool {
	if int(kind) >= len(e.times) {
		return false
	}
	e.times[kind] = value
	return true
}

func (e *testEntry) Size(kind SizeKind) int64 {
	if int(kind) >= len(e.sizes) {
		return Unknown
	}
	return e.sizes[kind]
}

func (e *testEntry) SetSize(kind SizeKind, value int64) bool {
	if int(kind) >= len(e.sizes) {
		return false
	}
	e.sizes[kind] = value
	return true
}

// testDriver is a trivial ArchiveDriver that always succeeds, optionally
// seeding a new entry's times/sizes from a template.
type testDriver struct {
	// rejectNames causes NewEntry/AssertEncodable to fail for any name in
	// this set, simulating a driver's encoding rejection.
	rejectNames map[string]bool
}

func (d *testDriver) NewEntry(name string, kind EntryType, template ArchiveEntry, options CreateOptions) (ArchiveEntry, error) {
	if d.rejectNames[name] {
		return nil, ErrInvalidName
	}
	entry := newTestEntry(name, kind)
	if template != nil {
		for _, k := range StandardAccessKinds {
			if v := template.Time(k); v != Unknown {
				entry.SetTime(k, v)
			}
		}
		for _, k := range []SizeKind{SizeKindData, SizeKindStorage} {
			if v := template.Size(k); v != Unknown {
				entry.SetSize(k, v)
			}
		}
	}
	return entry, nil
}

func (d *testDriver) AssertEncodable(name string) error {
	if d.rejectNames[name] {
		return ErrInvalidName
	}
	return nil
}

// testContainer is a trivial EntryContainer over a fixed slice.
type testContainer struct {
	entries []ArchiveEntry
}

func (c *testContainer) Len() int { return len(c.entries) }

func (c *testContainer) Entries() []ArchiveEntry { return c.entries }

func (c *testContainer) Entry(name string) (ArchiveEntry, bool) {
	for _, e := range c.entries {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

func newTimedFileEntry(name string, writeTime int64) *testEntry {
	e := newTestEntry(name, EntryTypeFile)
	e.SetTime(AccessKindWrite, writeTime)
	return e
}
