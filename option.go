package memdex

// Options configures tree behavior.
type Options struct {
	logger    Logger
	cacheSize uint32 // Number of Get results memoized. 0 disables the cache.
}

// defaultOptions returns the default configuration: no lookup cache,
// logging discarded.
func defaultOptions() Options {
	return Options{
		logger:    DiscardLogger{},
		cacheSize: 0,
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger used for invariant-check reporting.
// The standard library's *slog.Logger satisfies the Logger interface.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.logger = l
	}
}

// WithLookupCache enables an LRU cache in front of Get, memoizing up to
// capacity recent lookups. Entries are invalidated by Set and Delete on
// the same key, so the cache never serves stale values.
//
// Only worth enabling for read-heavy workloads with a hot key set.
func WithLookupCache(capacity uint32) Option {
	return func(opts *Options) {
		opts.cacheSize = capacity
	}
}
