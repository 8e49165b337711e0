// Package cache implements the spending-report cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// redisSpendingCache implements the adapter.SpendingCache interface.
type redisSpendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSpendingCache creates a new Redis-backed spending cache.
func NewRedisSpendingCache(client *redis.Client, ttl time.Duration) adapter.SpendingCache {
	return &redisSpendingCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) string {
	return fmt.Sprintf("spending:%s:%s:%04d-%02d", ownerType, ownerID, year, month)
}

// Get retrieves the cached report for an owner and month. A cache miss
// returns (nil, nil).
func (c *redisSpendingCache) Get(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) (*valueobject.SpendingReport, error) {
	payload, err := c.client.Get(ctx, cacheKey(ownerType, ownerID, month, year)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var report valueobject.SpendingReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached spending report: %w", err)
	}
	return &report, nil
}

// Set stores a report for an owner and month.
func (c *redisSpendingCache) Set(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int, report *valueobject.SpendingReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode spending report: %w", err)
	}
	return c.client.Set(ctx, cacheKey(ownerType, ownerID, month, year), payload, c.ttl).Err()
}

// Invalidate drops the cached report for an owner and month.
func (c *redisSpendingCache) Invalidate(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) error {
	return c.client.Del(ctx, cacheKey(ownerType, ownerID, month, year)).Err()
}

// noopSpendingCache is used when Redis is disabled. Every read misses.
type noopSpendingCache struct{}

// NewNoopSpendingCache creates a cache that stores nothing.
func NewNoopSpendingCache() adapter.SpendingCache {
	return &noopSpendingCache{}
}

func (noopSpendingCache) Get(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) (*valueobject.SpendingReport, error) {
	return nil, nil
}

func (noopSpendingCache) Set(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int, report *valueobject.SpendingReport) error {
	return nil
}

func (noopSpendingCache) Invalidate(ctx context.Context, ownerType entity.OwnerType, ownerID uuid.UUID, month, year int) error {
	return nil
}
