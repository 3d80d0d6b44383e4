// Package counter keeps the aggregate confinement counts in Redis so every
// server instance reads and adjusts the same values.
package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/redis/go-redis/v9"
)

const countKeyPrefix = "confinement_count:"

// ErrUnknownConfinementType is returned for a type with no counter
var ErrUnknownConfinementType = errors.New("no counter for confinement type")

// Config holds configuration for the Redis counter store
type Config struct {
	RedisClient *redis.Client
}

// redisStore implements events.CounterStore with INCRBY on one key per type
type redisStore struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed counter store
func NewRedis(cfg *Config) (*redisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisStore{
		client: cfg.RedisClient,
	}, nil
}

func countKey(t models.ConfinementType) (string, error) {
	for _, known := range models.ConfinementTypes {
		if t == known {
			return countKeyPrefix + string(t), nil
		}
	}
	return "", ErrUnknownConfinementType
}

// Add applies delta atomically and returns the value every instance now sees
func (r *redisStore) Add(ctx context.Context, t models.ConfinementType, delta int64) (int64, error) {
	key, err := countKey(t)
	if err != nil {
		return 0, err
	}

	count, err := r.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to adjust %s count: %w", t, err)
	}

	return count, nil
}

// Set overwrites the count, used when seeding from the confined index
func (r *redisStore) Set(ctx context.Context, t models.ConfinementType, count int64) error {
	key, err := countKey(t)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, count, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s count: %w", t, err)
	}

	return nil
}

// Get returns the current count; a missing key reads as zero
func (r *redisStore) Get(ctx context.Context, t models.ConfinementType) (int64, error) {
	key, err := countKey(t)
	if err != nil {
		return 0, err
	}

	count, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get %s count: %w", t, err)
	}

	return count, nil
}
