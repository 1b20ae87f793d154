package palremap

import (
	"log/slog"
	"runtime"
)

// DefaultCacheSize is the default capacity of the per-call match cache.
const DefaultCacheSize = 4096

// Option configures a single Remap call.
//
// Example:
//
//	// Serial remap without the match cache
//	stats, err := palremap.Remap(buf, pal, palremap.WithWorkers(1), palremap.WithMatchCache(0))
type Option func(*options)

type options struct {
	workers    int
	bandHeight int
	cacheSize  int
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:    runtime.GOMAXPROCS(0),
		bandHeight: 0, // chosen from height and workers
		cacheSize:  DefaultCacheSize,
	}
}

// WithWorkers sets how many goroutines process row bands.
// Values below 2 run the remap on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBandHeight sets the number of rows per parallel job.
// Zero or a negative value picks a height automatically.
func WithBandHeight(rows int) Option {
	return func(o *options) {
		o.bandHeight = rows
	}
}

// WithMatchCache sets the capacity of the nearest-match cache used during
// one remap. Zero disables the cache; negative values use DefaultCacheSize.
// The cache never changes the output, only how often the palette is scanned.
func WithMatchCache(capacity int) Option {
	return func(o *options) {
		if capacity < 0 {
			capacity = DefaultCacheSize
		}
		o.cacheSize = capacity
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
