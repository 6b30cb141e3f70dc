package archivefs

// CreateOptions is a bitset controlling Mknod's behavior.
type CreateOptions uint8

const (
	// CreateParents causes Mknod to synthesize any missing ancestor
	// directories rather than failing with ErrMissingParent.
	CreateParents CreateOptions = 1 << iota
	// CreateExclusive causes Mknod to fail with ErrAlreadyExists if an
	// entry is already present at the target path, rather than treating
	// the call as an idempotent re-creation.
	CreateExclusive
)

// Has reports whether every bit in other is set in o.
func (o CreateOptions) Has(other CreateOptions) bool {
	return o&other == other
}

// Option configures an ArchiveFileSystem at construction time.
type Option func(*buildOptions)

type buildOptions struct {
	template    ArchiveEntry
	ignoreGlobs []string
	logger      logger
}

// WithRootTemplate seeds the root directory entry's attributes from
// template when populating a filesystem from a container. It has no effect
// on the empty constructor.
func WithRootTemplate(template ArchiveEntry) Option {
	return func(o *buildOptions) {
		o.template = template
	}
}

// WithIgnoreGlobs skips any container entry whose canonical path matches one
// of the given doublestar glob patterns, both for table insertion and for
// fix-up enqueueing.
func WithIgnoreGlobs(patterns ...string) Option {
	return func(o *buildOptions) {
		o.ignoreGlobs = append(o.ignoreGlobs, patterns...)
	}
}

// logger is the minimal logging surface ArchiveFileSystem needs; it is
// satisfied by *logging.Logger without this package importing it directly,
// keeping archivefs free of a hard dependency on the logging package's
// construction details.
type logger interface {
	Debug(...interface{})
}

// WithLogger attaches a logger used to trace touch/commit activity.
func WithLogger(l logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}

func resolveOptions(opts []Option) *buildOptions {
	resolved := &buildOptions{}
	for _, opt := range opts {
		opt(resolved)
	}
	return resolved
}
