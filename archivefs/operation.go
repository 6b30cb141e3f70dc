package archivefs

import (
	"github.com/pkg/errors"

	"github.com/archivefs/archivefs/pkg/identifier"
)

// segment is one link in the chain of entries Mknod must create (or, for
// its first/anchor link, already found) to bring a target path into
// existence.
type segment struct {
	// path is this segment's canonical path.
	path string
	// base is the name under which this segment registers in the previous
	// segment's member set. It is empty for the anchor (first) segment,
	// which already exists and needs no registration.
	base string
	// kind is the entry type this segment has (or will be created with).
	kind EntryType
	// template seeds a newly created segment's attributes. Only ever
	// non-nil for a segment explicitly requested by the Mknod caller; every
	// synthesized intermediate directory gets a nil template.
	template ArchiveEntry
	// isNew is false for the anchor segment (which already exists in the
	// table) and true for every segment Commit must create.
	isNew bool
}

// Operation is a staged Mknod: the chain of segments needed to bring the
// requested path into existence, validated against the table at Mknod time
// but not yet applied. Call Commit to apply it.
type Operation struct {
	id         string
	fs         *ArchiveFileSystem
	generation uint64
	options    CreateOptions
	segments   []*segment
}

// ID returns the operation's identifier, useful for correlating a Mknod
// call with its eventual Commit in logs.
func (op *Operation) ID() string {
	return op.id
}

// Mknod validates and stages a transactional entry creation at name. It
// performs every check spec.md requires before any table mutation; nothing
// is modified until the returned Operation's Commit is called.
//
// template may be nil, an ArchiveEntry to seed the new entry's attributes
// from, or a *CovariantEntry (in which case the variant matching kind, if
// any, is unwrapped and used as the template).
func (fs *ArchiveFileSystem) Mknod(name string, kind EntryType, options CreateOptions, template interface{}) (*Operation, error) {
	canonical := Canonical(name)

	if kind != EntryTypeFile && kind != EntryTypeDirectory {
		return nil, pathError("mknod", canonical, ErrUnsupportedType)
	}

	if existing, ok := fs.table.Get(canonical); ok {
		if !existing.IsType(EntryTypeFile) {
			return nil, pathError("mknod", canonical, ErrNotReplaceable)
		}
		if kind != EntryTypeFile {
			return nil, pathError("mknod", canonical, ErrTypeMismatch)
		}
		if options.Has(CreateExclusive) {
			return nil, pathError("mknod", canonical, ErrAlreadyExists)
		}
	}

	var entryTemplate ArchiveEntry
	switch t := template.(type) {
	case nil:
	case ArchiveEntry:
		entryTemplate = t
	case *CovariantEntry:
		entryTemplate, _ = t.Get(kind)
	}

	segments, err := fs.buildSegmentChain(canonical, kind, options, entryTemplate)
	if err != nil {
		return nil, err
	}

	id, _ := identifier.New(identifier.PrefixOperation)
	fs.debugf("staged mknod %s (%s) as operation %s", canonical, kind, id)

	return &Operation{
		id:         id,
		fs:         fs,
		generation: fs.generation,
		options:    options,
		segments:   segments,
	}, nil
}

// buildSegmentChain implements spec.md's §4.3 segment-link construction: it
// splits path into (parent, base); if parent already exists it must be a
// DIRECTORY and the chain is just [parent, newChild]; otherwise, if
// CreateParents is set, the chain for parent is built recursively (with a
// nil template, since only the final segment takes the caller's template)
// and newChild is appended; otherwise CreateParents being unset is a
// missing-parent error.
func (fs *ArchiveFileSystem) buildSegmentChain(path string, kind EntryType, options CreateOptions, template ArchiveEntry) ([]*segment, error) {
	parentPath, base := Split(path)

	if parent, ok := fs.table.Get(parentPath); ok {
		if !parent.IsType(EntryTypeDirectory) {
			return nil, pathError("mknod", path, ErrNotADirectory)
		}
		anchor := &segment{path: parentPath, kind: EntryTypeDirectory, isNew: false}
		child := &segment{path: path, base: base, kind: kind, template: template, isNew: true}
		return []*segment{anchor, child}, nil
	}

	if !options.Has(CreateParents) {
		return nil, pathError("mknod", path, ErrMissingParent)
	}

	parentChain, err := fs.buildSegmentChain(parentPath, EntryTypeDirectory, options, nil)
	if err != nil {
		return nil, err
	}
	child := &segment{path: path, base: base, kind: kind, template: template, isNew: true}
	return append(parentChain, child), nil
}

// Commit applies the staged operation: it fires the touch listener, then
// walks the segment chain inserting each new entry, registering it in its
// parent's member set, and touching the parent's WRITE time exactly when
// that parent is not a ghost directory (WRITE == Unknown) and its member
// set genuinely grew. Every newly created segment along the chain -- not
// just the final one -- has its own WRITE time set to the commit time if
// it is still Unknown once inserted.
//
// If the table has been structurally mutated by another operation since
// Mknod staged this one, Commit fails with ErrStaleOperation rather than
// risk corrupting the invariants Mknod validated against.
func (op *Operation) Commit() error {
	fs := op.fs
	if fs.generation != op.generation {
		return pathError("mknod", op.segments[len(op.segments)-1].path, ErrStaleOperation)
	}

	if err := fs.touch(); err != nil {
		return err
	}

	var now int64 = -1
	nowLazy := func() int64 {
		if now < 0 {
			now = nowMillis()
		}
		return now
	}

	for i := 1; i < len(op.segments); i++ {
		seg := op.segments[i]
		prev := op.segments[i-1]

		var entry ArchiveEntry
		if existing, ok := fs.table.Get(seg.path); ok && existing.IsType(seg.kind) {
			entry, _ = existing.Get(seg.kind)
		} else {
			created, err := fs.driver.NewEntry(seg.path, seg.kind, seg.template, op.options)
			if err != nil {
				return pathError("mknod", seg.path, errors.Wrap(err, "driver rejected entry"))
			}
			entry = created
		}

		fs.table.Add(seg.path, seg.kind, entry)

		parentWrapper, ok := fs.table.Get(prev.path)
		if !ok {
			panic("archivefs: mknod commit found no entry for parent " + prev.path)
		}
		grew := parentWrapper.Add(seg.base)
		if grew {
			if parentEntry, ok := parentWrapper.Get(EntryTypeDirectory); ok && parentEntry.Time(AccessKindWrite) != Unknown {
				parentEntry.SetTime(AccessKindWrite, nowLazy())
			}
		}

		// Every freshly created segment (as opposed to an already-existing
		// anchor reused from the table) gets its own WRITE time stamped if
		// still Unknown -- this is what distinguishes a directory created by
		// CreateParents from a ghost directory synthesized by fix, and it
		// must happen for every new segment, not just the last one, since an
		// intermediate directory's own write is never revisited once it
		// becomes somebody else's parent.
		if seg.isNew && entry.Time(AccessKindWrite) == Unknown {
			entry.SetTime(AccessKindWrite, nowLazy())
		}
	}

	fs.generation++
	fs.debugf("committed mknod operation %s", op.id)
	return nil
}
