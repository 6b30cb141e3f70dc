// Package fsdriver implements archivefs.ArchiveDriver and
// archivefs.EntryContainer over a real OS directory tree, giving the
// library something concrete to build an ArchiveFileSystem from beyond
// hand-built test fixtures. It never parses an archive container format --
// only a directory -- so it carries none of the encoding/decoding concerns
// an actual archive codec would.
package fsdriver

import (
	"time"

	"github.com/mutagen-io/extstat"

	"github.com/archivefs/archivefs"
)

// entry is the archivefs.ArchiveEntry implementation used by both Driver
// (for entries Mknod stages in memory) and Container (for entries read off
// disk during a directory walk). Mutating it never touches the underlying
// file; fsdriver's container is a read-only snapshot.
type entry struct {
	name  string
	kind  archivefs.EntryType
	times [3]int64
	sizes [2]int64
}

func newEntry(name string, kind archivefs.EntryType) *entry {
	return &entry{
		name:  name,
		kind:  kind,
		times: [3]int64{archivefs.Unknown, archivefs.Unknown, archivefs.Unknown},
		sizes: [2]int64{archivefs.Unknown, archivefs.Unknown},
	}
}

// Name implements archivefs.ArchiveEntry.
func (e *entry) Name() string { return e.name }

// Type implements archivefs.ArchiveEntry.
func (e *entry) Type() archivefs.EntryType { return e.kind }

// Time implements archivefs.ArchiveEntry.
func (e *entry) Time(kind archivefs.AccessKind) int64 {
	if int(kind) >= len(e.times) {
		return archivefs.Unknown
	}
	return e.times[kind]
}

// SetTime implements archivefs.ArchiveEntry.
func (e *entry) SetTime(kind archivefs.AccessKind, value int64) bool {
	if int(kind) >= len(e.times) {
		return false
	}
	e.times[kind] = value
	return true
}

// Size implements archivefs.ArchiveEntry.
func (e *entry) Size(kind archivefs.SizeKind) int64 {
	if int(kind) >= len(e.sizes) {
		return archivefs.Unknown
	}
	return e.sizes[kind]
}

// SetSize implements archivefs.ArchiveEntry.
func (e *entry) SetSize(kind archivefs.SizeKind, value int64) bool {
	if int(kind) >= len(e.sizes) {
		return false
	}
	e.sizes[kind] = value
	return true
}

// millisOrUnknown converts t to Unix milliseconds, treating the zero time
// (as extstat reports for a time dimension the platform doesn't expose) as
// archivefs.Unknown rather than a bogus large-negative millisecond value.
func millisOrUnknown(t time.Time) int64 {
	if t.IsZero() {
		return archivefs.Unknown
	}
	return t.UnixMilli()
}

// newEntryFromStat constructs an entry named name for the file at fullPath,
// seeding its times from extstat where the platform supports them and
// falling back to archivefs.Unknown for creation time on platforms (mainly
// Linux) that don't expose a birth time.
func newEntryFromStat(name string, kind archivefs.EntryType, fullPath string, size int64, fallbackModTime time.Time) (*entry, error) {
	e := newEntry(name, kind)

	stat, err := extstat.NewFromFileName(fullPath)
	if err != nil {
		e.times[archivefs.AccessKindWrite] = millisOrUnknown(fallbackModTime)
	} else {
		e.times[archivefs.AccessKindRead] = millisOrUnknown(stat.AccessTime)
		e.times[archivefs.AccessKindWrite] = millisOrUnknown(stat.ModTime)
		if stat.HasCreationTime {
			e.times[archivefs.AccessKindCreate] = millisOrUnknown(stat.CreationTime)
		}
	}

	if kind == archivefs.EntryTypeFile {
		e.sizes[archivefs.SizeKindData] = size
		e.sizes[archivefs.SizeKindStorage] = size
	}

	return e, nil
}
