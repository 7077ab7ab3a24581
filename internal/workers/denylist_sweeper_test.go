package workers

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/metrics"
	"github.com/MKhiriev/go-rest-api/internal/store"
)

func TestDenylistSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	denylist := store.NewMemoryDenylist()
	require.NoError(t, denylist.Add(ctx, "expired-1", now.Add(-time.Hour)))
	require.NoError(t, denylist.Add(ctx, "expired-2", now))
	require.NoError(t, denylist.Add(ctx, "live", now.Add(time.Hour)))

	m := metrics.New(prometheus.NewRegistry())
	s := NewDenylistSweeper(denylist, m, time.Minute, logger.Nop())
	s.now = func() time.Time { return now }

	assert.Equal(t, 2, s.sweep())
	assert.Equal(t, 1, denylist.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DenylistSize))

	assert.Equal(t, 0, s.sweep())
}

func TestDenylistSweeper_NilObserver(t *testing.T) {
	s := NewDenylistSweeper(store.NewMemoryDenylist(), nil, time.Minute, logger.Nop())

	assert.NotPanics(t, func() { s.sweep() })
}

func TestDenylistSweeper_Run(t *testing.T) {
	denylist := store.NewMemoryDenylist()
	require.NoError(t, denylist.Add(context.Background(), "old", time.Now().Add(-time.Minute)))

	s := NewDenylistSweeper(denylist, nil, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return denylist.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
