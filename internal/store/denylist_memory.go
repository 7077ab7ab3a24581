package store

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist is an in-process [Denylist]. Entries are dropped by
// [MemoryDenylist.Sweep] once their token would have expired anyway.
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *MemoryDenylist) Add(_ context.Context, jti string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[jti] = expiresAt
	return nil
}

func (d *MemoryDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	expiresAt, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	return d.now().Before(expiresAt), nil
}

// Sweep removes every entry that expired before now and returns how many
// were removed.
func (d *MemoryDenylist) Sweep(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for jti, expiresAt := range d.entries {
		if !now.Before(expiresAt) {
			delete(d.entries, jti)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (d *MemoryDenylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.entries)
}
