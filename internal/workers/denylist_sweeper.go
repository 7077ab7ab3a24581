package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-rest-api/internal/logger"
)

// DenylistSweeper periodically drops revoked tokens that have expired
// anyway, so the in-memory denylist does not grow without bound.
type DenylistSweeper struct {
	denylist Sweeper
	observer SizeObserver
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func NewDenylistSweeper(denylist Sweeper, observer SizeObserver, interval time.Duration, logger *logger.Logger) *DenylistSweeper {
	return &DenylistSweeper{
		denylist: denylist,
		observer: observer,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *DenylistSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("denylist sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("denylist sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *DenylistSweeper) sweep() int {
	removed := s.denylist.Sweep(s.now())
	size := s.denylist.Len()
	if s.observer != nil {
		s.observer.SetDenylistSize(size)
	}

	s.logger.Debug().
		Str("func", "*DenylistSweeper.sweep").
		Int("removed", removed).
		Int("size", size).
		Msg("denylist swept")
	return removed
}
