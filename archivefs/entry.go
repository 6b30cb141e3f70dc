package archivefs

// EntryType identifies the kind of content an archive entry represents.
type EntryType uint8

const (
	// EntryTypeFile indicates a regular file.
	EntryTypeFile EntryType = iota
	// EntryTypeDirectory indicates a directory.
	EntryTypeDirectory
	// EntryTypeSpecial indicates content that is neither a file nor a
	// directory (e.g. a symbolic link or device entry, as the underlying
	// archive format defines it).
	EntryTypeSpecial
)

// String returns a human-readable name for the entry type.
func (t EntryType) String() string {
	switch t {
	case EntryTypeFile:
		return "file"
	case EntryTypeDirectory:
		return "directory"
	case EntryTypeSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// AccessKind identifies one of the archive's recorded time dimensions.
// Drivers may define additional kinds beyond the three below;
// StandardAccessKinds lists only these three, and they are the only kinds
// this package itself iterates over.
type AccessKind uint8

const (
	// AccessKindRead is the time of last read/access.
	AccessKindRead AccessKind = iota
	// AccessKindWrite is the time of last modification.
	AccessKindWrite
	// AccessKindCreate is the time of creation.
	AccessKindCreate
)

// String returns a human-readable name for the access kind.
func (k AccessKind) String() string {
	switch k {
	case AccessKindRead:
		return "read"
	case AccessKindWrite:
		return "write"
	case AccessKindCreate:
		return "create"
	default:
		return "unknown"
	}
}

// StandardAccessKinds is the minimal set of access kinds every driver is
// expected to support.
var StandardAccessKinds = []AccessKind{AccessKindRead, AccessKindWrite, AccessKindCreate}

// SizeKind identifies one of the archive's recorded size dimensions.
type SizeKind uint8

const (
	// SizeKindData is the uncompressed (logical) size of the entry's
	// content.
	SizeKindData SizeKind = iota
	// SizeKindStorage is the size the entry occupies within the archive
	// container (e.g. compressed size).
	SizeKindStorage
)

// String returns a human-readable name for the size kind.
func (k SizeKind) String() string {
	switch k {
	case SizeKindData:
		return "data"
	case SizeKindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Unknown is the sentinel value for times and sizes that have never been
// recorded.
const Unknown int64 = -1

// ArchiveEntry is the capability an archive driver must provide for each
// entry it stores: a name, a type, and mutable per-kind times and sizes.
// Implementations are owned by the driver's EntryContainer; the filesystem
// never constructs one directly except through ArchiveDriver.NewEntry.
type ArchiveEntry interface {
	// Name returns the entry's canonical archive path.
	Name() string
	// Type returns the entry's type.
	Type() EntryType
	// Time returns the recorded time for the given access kind, or Unknown
	// if none has been recorded.
	Time(kind AccessKind) int64
	// SetTime records a time for the given access kind. It returns false if
	// the driver's entry type doesn't support recording that kind.
	SetTime(kind AccessKind, value int64) bool
	// Size returns the recorded size for the given size kind, or Unknown if
	// none has been recorded.
	Size(kind SizeKind) int64
	// SetSize records a size for the given size kind. It returns false if
	// the driver's entry type doesn't support recording that kind.
	SetSize(kind SizeKind, value int64) bool
}
