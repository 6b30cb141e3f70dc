package archivefs

// ArchiveDriver is the external collaborator that knows how to construct
// driver-specific ArchiveEntry values and validate names against the
// underlying archive format's encoding. Concrete archive codecs (reading and
// writing the actual container bytes) are implemented entirely outside this
// package; ArchiveFileSystem only ever asks the driver to mint entries.
type ArchiveDriver interface {
	// NewEntry constructs a new entry named name of the given type. If
	// template is non-nil, the driver should seed the new entry's
	// attributes (times, sizes) from it where that makes sense for the
	// target type. NewEntry returns an error if name cannot be encoded by
	// the underlying archive format.
	NewEntry(name string, kind EntryType, template ArchiveEntry, options CreateOptions) (ArchiveEntry, error)
	// AssertEncodable performs the same encoding check as NewEntry would,
	// without constructing an entry.
	AssertEncodable(name string) error
}

// EntryContainer is the external collaborator providing the flat,
// driver-ordered list of entries an ArchiveFileSystem is populated from.
type EntryContainer interface {
	// Len returns the number of entries in the container.
	Len() int
	// Entries returns the container's entries. Iteration order is
	// driver-defined; ArchiveFileSystem does not rely on it.
	Entries() []ArchiveEntry
	// Entry looks up a single entry by its driver-native name.
	Entry(name string) (ArchiveEntry, bool)
}

// TouchListener is notified the first time an ArchiveFileSystem transitions
// from clean to dirty (see ArchiveFileSystem.touch). PreTouch may veto the
// transition by returning an error, in which case the filesystem remains
// unmodified.
type TouchListener interface {
	PreTouch() error
}

// TouchListenerFunc adapts a function to a TouchListener.
type TouchListenerFunc func() error

// PreTouch implements TouchListener.
func (f TouchListenerFunc) PreTouch() error {
	return f()
}
