package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the jobs the configured backends need. Only the
// in-memory denylist needs sweeping; Redis expires entries on its own.
// observer may be nil.
func NewWorkers(cfg config.Workers, denylist store.Denylist, observer SizeObserver, logger *logger.Logger) *Workers {
	w := &Workers{}

	if memory, ok := denylist.(*store.MemoryDenylist); ok && cfg.DenylistSweepInterval > 0 {
		w.workers = append(w.workers, NewDenylistSweeper(memory, observer, cfg.DenylistSweepInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("background workers created")
	return w
}

// Run starts every worker in its own goroutine and returns once all of
// them have stopped.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
