// Package clicks provides interfaces for types to be in compliance with.
package clicks

import "context"

// Tracker defines a set of methods for types implementing Tracker.
type Tracker interface {
	// RecordClick atomically increments the click counter and returns the new
	// count, emitting lifecycle events as a side effect.
	RecordClick(ctx context.Context, shortID string) (int64, error)
}
