package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errNilClient = errors.New("redis client is nil")

// Cache stores JSON encoded values of T under "<prefix>:<generation>:<field>".
// Invalidate bumps the generation, so every entry written under an older one
// is unreachable and left to expire.
type Cache[T any] struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

func New[T any](rc *redis.Client, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		rc:     rc,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Cache[T]) Key(generation int64, field string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, generation, field)
}

func (c *Cache[T]) generationKey() string {
	return c.prefix + ":generation"
}

// Generation returns the current generation, zero before the first Invalidate.
func (c *Cache[T]) Generation(ctx context.Context) (int64, error) {
	if c.rc == nil {
		return 0, errNilClient
	}

	gen, err := c.rc.Get(ctx, c.generationKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return gen, nil
}

// Get returns nil without error on a cache miss. The generation it read is
// returned so a value loaded after the miss can be stored with Set under the
// same generation.
func (c *Cache[T]) Get(ctx context.Context, field string) (*T, int64, error) {
	gen, err := c.Generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.rc.Get(ctx, c.Key(gen, field)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, fmt.Errorf("failed to get cache: %w", err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, gen, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &v, gen, nil
}

func (c *Cache[T]) Set(ctx context.Context, generation int64, field string, v *T) error {
	if c.rc == nil {
		return errNilClient
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := c.rc.Set(ctx, c.Key(generation, field), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *Cache[T]) Invalidate(ctx context.Context) error {
	if c.rc == nil {
		return errNilClient
	}
	if err := c.rc.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
