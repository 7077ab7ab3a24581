// Package workers runs the background jobs of the API next to the
// transport servers.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper is a denylist that has to drop expired entries itself.
type Sweeper interface {
	Sweep(now time.Time) int
	Len() int
}

// SizeObserver receives the denylist size after every sweep.
type SizeObserver interface {
	SetDenylistSize(n int)
}
