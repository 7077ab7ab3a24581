package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "token:denylist:jti:"

// redisCommander is the part of a redis client the denylist uses.
type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisDenylist is a [Denylist] shared by every API instance. Each entry
// carries a TTL so Redis expires it together with the token.
type RedisDenylist struct {
	client redisCommander
	now    func() time.Time
}

func NewRedisDenylist(client redisCommander) *RedisDenylist {
	return &RedisDenylist{client: client, now: time.Now}
}

// NewRedisDenylistFromURL connects to the redis server addressed by a
// redis:// URL.
func NewRedisDenylistFromURL(url string) (*RedisDenylist, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDenylist, err)
	}
	client := redis.NewClient(opts)
	return NewRedisDenylist(client), client, nil
}

func (d *RedisDenylist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, denylistKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDenylist, err)
	}
	return nil
}

func (d *RedisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDenylist, err)
	}
	return n > 0, nil
}
