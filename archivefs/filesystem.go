package archivefs

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// RootPath is the canonical path of the filesystem root.
const RootPath = ""

// FileSystem is the interface satisfied by both ArchiveFileSystem and its
// read-only wrapper, so callers that don't care which they were handed can
// still read and (if permitted) mutate through a single type.
type FileSystem interface {
	// Entry returns a defensive clone of the covariant entry at name, or
	// false if no entry exists there.
	Entry(name string) (*CovariantEntry, bool)
	// Mknod stages a transactional entry creation. Call Commit on the
	// result to apply it.
	Mknod(name string, kind EntryType, options CreateOptions, template interface{}) (*Operation, error)
	// Unlink removes the entry at name.
	Unlink(name string) error
	// SetTime sets value for every kind in kinds on the entry at name.
	SetTime(name string, kinds []AccessKind, value int64) (bool, error)
	// SetTimes sets each (kind, value) pair on the entry at name, skipping
	// (and reporting as a partial failure) any pair whose value is negative.
	SetTimes(name string, times map[AccessKind]int64) (bool, error)
	// SetReadOnly succeeds iff the filesystem is already read-only.
	SetReadOnly(name string) error
	// IsReadOnly reports whether the filesystem rejects all mutators.
	IsReadOnly() bool
	// IsWritable is the negation of IsReadOnly.
	IsWritable(name string) bool
	// Entries returns every covariant entry, in table insertion order.
	Entries() []*CovariantEntry
	// Size returns the number of distinct paths in the table.
	Size() int
	// OrphanCount returns the number of entries that were inserted into the
	// table but never reachable from the root through fix-up (absolute or
	// escaping archive names; see the populated constructor).
	OrphanCount() int
	// SetTouchListener registers (or, with nil, clears) the listener
	// notified on the filesystem's first mutation.
	SetTouchListener(listener TouchListener) error
}

// nowMillis is overridable in tests.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// ArchiveFileSystem is the tree assembler and mutator described by this
// package: an insertion-ordered EntryTable reconstructed from a flat,
// possibly malformed list of archive entries, exposing transactional
// mutation through Mknod and direct mutation through Unlink/SetTime.
//
// ArchiveFileSystem is not safe for concurrent use; callers (typically a
// single owning archive controller) must serialize access.
type ArchiveFileSystem struct {
	driver        ArchiveDriver
	table         *EntryTable
	touched       bool
	touchListener TouchListener
	generation    uint64
	orphans       int
	logger        logger
}

// NewArchiveFileSystem creates an empty archive filesystem: a single root
// directory entry, with every access-kind time set to the current time, and
// already marked touched (an empty filesystem is, by construction, already
// dirty relative to "nothing").
func NewArchiveFileSystem(driver ArchiveDriver, opts ...Option) (*ArchiveFileSystem, error) {
	resolved := resolveOptions(opts)

	root, err := driver.NewEntry(RootPath, EntryTypeDirectory, nil, 0)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create root entry")
	}
	now := nowMillis()
	for _, kind := range StandardAccessKinds {
		root.SetTime(kind, now)
	}

	table := newEntryTable()
	table.Add(RootPath, EntryTypeDirectory, root)

	fs := &ArchiveFileSystem{
		driver:  driver,
		table:   table,
		touched: true,
		logger:  resolved.logger,
	}
	fs.debugf("created empty filesystem")
	return fs, nil
}

// NewArchiveFileSystemFromContainer populates an archive filesystem from an
// EntryContainer: every entry is inserted under its canonical path, the root
// is then overwritten with a fresh entry (optionally seeded from
// WithRootTemplate), and a fix-up pass synthesizes any ghost directories
// needed to make the tree internally consistent (see the fix method).
func NewArchiveFileSystemFromContainer(driver ArchiveDriver, container EntryContainer, opts ...Option) (*ArchiveFileSystem, error) {
	resolved := resolveOptions(opts)

	table := newEntryTable()
	fs := &ArchiveFileSystem{
		driver: driver,
		table:  table,
		logger: resolved.logger,
	}

	var toFix []string
	for _, entry := range container.Entries() {
		canonical := Canonical(entry.Name())
		if matchesAnyGlob(resolved.ignoreGlobs, canonical) {
			continue
		}
		table.Add(canonical, entry.Type(), entry)
		if !strings.HasPrefix(canonical, "/") && !strings.HasPrefix(canonical, "../") {
			toFix = append(toFix, canonical)
		} else {
			fs.orphans++
		}
	}

	root, err := driver.NewEntry(RootPath, EntryTypeDirectory, resolved.template, 0)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create root entry")
	}
	table.Add(RootPath, EntryTypeDirectory, root)

	for _, path := range toFix {
		fs.fix(path)
	}

	fs.debugf("populated filesystem with %d entries (%d orphaned)", table.Len(), fs.orphans)
	return fs, nil
}

func matchesAnyGlob(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func (fs *ArchiveFileSystem) debugf(format string, args ...interface{}) {
	if fs.logger != nil {
		fs.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// fix recursively establishes the tree-closure invariant (I2/I3) for path:
// it ensures path's parent exists (synthesizing a ghost DIRECTORY if
// necessary) and lists path as a member of that parent, then recurses on the
// parent. It stops at the root.
func (fs *ArchiveFileSystem) fix(path string) {
	if IsRoot(path) {
		return
	}
	parentPath, base := Split(path)

	parent, ok := fs.table.Get(parentPath)
	needsGhost := !ok
	if ok && !parent.IsType(EntryTypeDirectory) {
		needsGhost = true
	}
	if needsGhost {
		parent, _ = fs.table.Add(parentPath, EntryTypeDirectory, newGhostEntry(parentPath))
	}
	parent.Add(base)

	fs.fix(parentPath)
}

// Entry returns a defensive clone of the covariant entry at name.
func (fs *ArchiveFileSystem) Entry(name string) (*CovariantEntry, bool) {
	wrapper, ok := fs.table.Get(Canonical(name))
	if !ok {
		return nil, false
	}
	return wrapper.Clone(), true
}

// Entries returns a defensive clone of every covariant entry, in table
// insertion order.
func (fs *ArchiveFileSystem) Entries() []*CovariantEntry {
	paths := fs.table.Paths()
	result := make([]*CovariantEntry, 0, len(paths))
	for _, path := range paths {
		wrapper, ok := fs.table.Get(path)
		if !ok {
			continue
		}
		result = append(result, wrapper.Clone())
	}
	return result
}

// Size returns the number of distinct paths currently in the table.
func (fs *ArchiveFileSystem) Size() int {
	return fs.table.Len()
}

// OrphanCount returns the number of container entries that were inserted
// into the table but excluded from fix-up because their canonical path was
// absolute or escaped the archive root (see the populated constructor and
// spec's Open Question on this behavior).
func (fs *ArchiveFileSystem) OrphanCount() int {
	return fs.orphans
}

// IsReadOnly always reports false for ArchiveFileSystem; wrap with
// NewReadOnly for a read-only view.
func (fs *ArchiveFileSystem) IsReadOnly() bool {
	return false
}

// IsWritable is the negation of IsReadOnly.
func (fs *ArchiveFileSystem) IsWritable(name string) bool {
	return !fs.IsReadOnly()
}

// SetReadOnly succeeds iff the filesystem is already read-only (which, for
// ArchiveFileSystem itself, it never is).
func (fs *ArchiveFileSystem) SetReadOnly(name string) error {
	if fs.IsReadOnly() {
		return nil
	}
	return pathError("setReadOnly", Canonical(name), ErrReadOnly)
}

// SetTouchListener registers listener as the filesystem's touch listener. It
// fails if a non-nil listener is already registered and listener is
// non-nil; passing nil always clears the current listener.
func (fs *ArchiveFileSystem) SetTouchListener(listener TouchListener) error {
	if fs.touchListener != nil && listener != nil {
		return ErrListenerAlreadySet
	}
	fs.touchListener = listener
	return nil
}

// touch fires the touch listener's PreTouch hook on the first mutation of a
// filesystem that is not yet touched. Once a touch succeeds the filesystem
// stays touched and the hook does not fire again; a filesystem created by
// NewArchiveFileSystem starts out touched, so it never fires there. If
// PreTouch vetoes with an error, the filesystem remains untouched and the
// caller must not proceed with its mutation.
func (fs *ArchiveFileSystem) touch() error {
	if fs.touched {
		return nil
	}
	if fs.touchListener != nil {
		if err := fs.touchListener.PreTouch(); err != nil {
			return errors.Wrap(err, "touch listener vetoed mutation")
		}
	}
	fs.touched = true
	return nil
}

// Unlink removes the entry at name. Unlinking a non-empty directory,
// including the root, fails with a *DirectoryNotEmptyError; unlinking the
// empty root is a silent no-op (P2: the root is never removed).
func (fs *ArchiveFileSystem) Unlink(name string) error {
	canonical := Canonical(name)

	wrapper, ok := fs.table.Get(canonical)
	if !ok {
		return pathError("unlink", canonical, ErrNotFound)
	}
	if wrapper.IsType(EntryTypeDirectory) {
		if members := wrapper.Members(); len(members) > 0 {
			return &DirectoryNotEmptyError{Path: canonical, Count: len(members)}
		}
	}
	if IsRoot(canonical) {
		return nil
	}

	if err := fs.touch(); err != nil {
		return err
	}

	parentPath, base := Split(canonical)
	parent, ok := fs.table.Get(parentPath)
	if !ok {
		panic("archivefs: unlink found no parent entry for " + canonical)
	}

	fs.table.Remove(canonical)
	for _, entry := range wrapper.variants {
		for _, access := range StandardAccessKinds {
			entry.SetTime(access, Unknown)
		}
		for _, size := range []SizeKind{SizeKindData, SizeKindStorage} {
			entry.SetSize(size, Unknown)
		}
	}

	if !parent.Remove(base) {
		panic("archivefs: unlink found parent missing member " + base + " for " + canonical)
	}
	if parentEntry, ok := parent.Get(EntryTypeDirectory); ok && parentEntry.Time(AccessKindWrite) != Unknown {
		parentEntry.SetTime(AccessKindWrite, nowMillis())
	}

	fs.generation++
	fs.debugf("unlinked %s", canonical)
	return nil
}

// SetTime sets value for every access kind in kinds on every variant of the
// entry at name, returning the conjunction of each underlying SetTime call's
// success.
func (fs *ArchiveFileSystem) SetTime(name string, kinds []AccessKind, value int64) (bool, error) {
	canonical := Canonical(name)
	if value < 0 {
		return false, pathError("setTime", canonical, ErrInvalidArgument)
	}
	wrapper, ok := fs.table.Get(canonical)
	if !ok {
		return false, pathError("setTime", canonical, ErrNotFound)
	}
	if err := fs.touch(); err != nil {
		return false, err
	}

	result := true
	for _, kind := range kinds {
		for _, entry := range wrapper.variants {
			if !entry.SetTime(kind, value) {
				result = false
			}
		}
	}
	fs.generation++
	return result, nil
}

// SetTimes sets each (kind, value) pair in times on every variant of the
// entry at name. Touch fires unconditionally before any value is applied,
// even if every pair is skipped for having a negative value. Pairs with a
// negative value are skipped and counted as a partial failure.
func (fs *ArchiveFileSystem) SetTimes(name string, times map[AccessKind]int64) (bool, error) {
	canonical := Canonical(name)
	wrapper, ok := fs.table.Get(canonical)
	if !ok {
		return false, pathError("setTime", canonical, ErrNotFound)
	}
	if err := fs.touch(); err != nil {
		return false, err
	}

	result := true
	for kind, value := range times {
		if value < 0 {
			result = false
			continue
		}
		for _, entry := range wrapper.variants {
			if !entry.SetTime(kind, value) {
				result = false
			}
		}
	}
	fs.generation++
	return result, nil
}
