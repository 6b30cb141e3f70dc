package archivefs

// ghostEntry is the ArchiveEntry implementation used for directories
// synthesized by fix-up (see fix in filesystem.go) rather than supplied by
// the driver's container. A ghost directory's times and sizes start at
// Unknown and stay that way until something explicitly sets them (an
// explicit SetTime call), which is exactly the signal a driver needs to
// decide whether to persist it.
//
// Ghost entries are never handed to the driver; they exist purely so the
// tree has something to put in the table at a synthesized path.
type ghostEntry struct {
	name  string
	times [3]int64
	sizes [2]int64
}

func newGhostEntry(name string) *ghostEntry {
	return &ghostEntry{
		name:  name,
		times: [3]int64{Unknown, Unknown, Unknown},
		sizes: [2]int64{Unknown, Unknown},
	}
}

// Name implements ArchiveEntry.
func (g *ghostEntry) Name() string {
	return g.name
}

// Type implements ArchiveEntry.
func (g *ghostEntry) Type() EntryType {
	return EntryTypeDirectory
}

// Time implements ArchiveEntry.
func (g *ghostEntry) Time(kind AccessKind) int64 {
	if int(kind) >= len(g.times) {
		return Unknown
	}
	return g.times[kind]
}

// SetTime implements ArchiveEntry.
func (g *ghostEntry) SetTime(kind AccessKind, value int64) bool {
	if int(kind) >= len(g.times) {
		return false
	}
	g.times[kind] = value
	return true
}

// Size implements ArchiveEntry.
func (g *ghostEntry) Size(kind SizeKind) int64 {
	if int(kind) >= len(g.sizes) {
		return Unknown
	}
	return g.sizes[kind]
}

// SetSize implements ArchiveEntry.
func (g *ghostEntry) SetSize(kind SizeKind, value int64) bool {
	if int(kind) >= len(g.sizes) {
		return false
	}
	g.sizes[kind] = value
	return true
}
