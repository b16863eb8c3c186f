package search

import (
	"log/slog"
	"runtime"
)

// DefaultRadius is the default maximum search radius in map units.
const DefaultRadius = 100.0

// Option configures the search engine.
type Option func(*Engine)

// WithRadius sets the maximum search radius in map units. Candidates farther
// than this edge-to-edge are never considered.
func WithRadius(r float64) Option {
	return func(e *Engine) {
		e.radius = r
	}
}

// WithWorkers sets the number of concurrent workers for the source-feature
// loop. Values < 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func defaultWorkers() int {
	return runtime.NumCPU()
}
