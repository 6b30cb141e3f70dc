package keyprovider

import (
	"github.com/archivefs/archivefs/pkg/logging"
)

// Option configures a KeyProvider at construction time.
type Option func(*buildOptions)

type buildOptions struct {
	logger *logging.Logger
}

// WithLogger attaches a logger used to trace state transitions. A nil
// logger (the default) disables tracing; *logging.Logger is itself
// nil-safe, so this is never a source of panics.
func WithLogger(l *logging.Logger) Option {
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
