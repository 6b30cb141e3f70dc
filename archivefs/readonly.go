package archivefs

// ReadOnlyFileSystem wraps an ArchiveFileSystem so that every mutator fails
// with ErrReadOnly before touching anything, while every read passes
// through to the underlying filesystem unchanged. It exists so a caller can
// hand out a read-only view of a filesystem it otherwise retains full
// mutation rights over.
type ReadOnlyFileSystem struct {
	fs *ArchiveFileSystem
}

// NewReadOnly wraps fs in a read-only view.
func NewReadOnly(fs *ArchiveFileSystem) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fs}
}

// Entry implements FileSystem.
func (r *ReadOnlyFileSystem) Entry(name string) (*CovariantEntry, bool) {
	return r.fs.Entry(name)
}

// Mknod implements FileSystem, always failing with ErrReadOnly.
func (r *ReadOnlyFileSystem) Mknod(name string, kind EntryType, options CreateOptions, template interface{}) (*Operation, error) {
	return nil, pathError("mknod", Canonical(name), ErrReadOnly)
}

// Unlink implements FileSystem, always failing with ErrReadOnly.
func (r *ReadOnlyFileSystem) Unlink(name string) error {
	return pathError("unlink", Canonical(name), ErrReadOnly)
}

// SetTime implements FileSystem, always failing with ErrReadOnly.
func (r *ReadOnlyFileSystem) SetTime(name string, kinds []AccessKind, value int64) (bool, error) {
	return false, pathError("setTime", Canonical(name), ErrReadOnly)
}

// SetTimes implements FileSystem, always failing with ErrReadOnly.
func (r *ReadOnlyFileSystem) SetTimes(name string, times map[AccessKind]int64) (bool, error) {
	return false, pathError("setTime", Canonical(name), ErrReadOnly)
}

// SetReadOnly implements FileSystem. It always succeeds: the filesystem is
// already read-only.
func (r *ReadOnlyFileSystem) SetReadOnly(name string) error {
	return nil
}

// IsReadOnly implements FileSystem, always returning true.
func (r *ReadOnlyFileSystem) IsReadOnly() bool {
	return true
}

// IsWritable implements FileSystem, always returning false.
func (r *ReadOnlyFileSystem) IsWritable(name string) bool {
	return false
}

// Entries implements FileSystem.
func (r *ReadOnlyFileSystem) Entries() []*CovariantEntry {
	return r.fs.Entries()
}

// Size implements FileSystem.
func (r *ReadOnlyFileSystem) Size() int {
	return r.fs.Size()
}

// OrphanCount implements FileSystem.
func (r *ReadOnlyFileSystem) OrphanCount() int {
	return r.fs.OrphanCount()
}

// SetTouchListener implements FileSystem by registering listener on the
// underlying filesystem. The read-only view's own mutators never reach
// touch, but the listener does fire when the underlying filesystem is
// mutated directly.
func (r *ReadOnlyFileSystem) SetTouchListener(listener TouchListener) error {
	return r.fs.SetTouchListener(listener)
}

var (
	_ FileSystem = (*ArchiveFileSystem)(nil)
	_ FileSystem = (*ReadOnlyFileSystem)(nil)
)
