package achievement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// One hash per character, field = achievement key
	unlocksKeyPrefix = "achievements:"
)

// Config holds configuration for the Redis achievement repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed achievement repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func unlocksKey(characterID string) string {
	return unlocksKeyPrefix + characterID
}

// InsertUnlock writes the unlock with HSETNX so the first writer wins
func (r *redisRepository) InsertUnlock(ctx context.Context, input *InsertUnlockInput) (*InsertUnlockOutput, error) {
	if err := validateUnlock(input); err != nil {
		return nil, err
	}

	unlock := input.Unlock

	unlockJSON, err := json.Marshal(unlock)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unlock: %w", err)
	}

	inserted, err := r.client.HSetNX(ctx, unlocksKey(unlock.CharacterID), unlock.AchievementKey, unlockJSON).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to insert unlock: %w", err)
	}

	return &InsertUnlockOutput{
		Inserted: inserted,
	}, nil
}

// ListUnlocks returns the unlocks stored for a character
func (r *redisRepository) ListUnlocks(ctx context.Context, input *ListUnlocksInput) (*ListUnlocksOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errEmptyCharacter
	}

	fields, err := r.client.HGetAll(ctx, unlocksKey(input.CharacterID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}

	unlocks := make([]*models.AchievementUnlock, 0, len(fields))
	for key, raw := range fields {
		var unlock models.AchievementUnlock
		if err := json.Unmarshal([]byte(raw), &unlock); err != nil {
			return nil, fmt.Errorf("failed to unmarshal unlock %s: %w", key, err)
		}
		unlocks = append(unlocks, &unlock)
	}

	sortUnlocks(unlocks)

	return &ListUnlocksOutput{
		Unlocks: unlocks,
	}, nil
}

func sortUnlocks(unlocks []*models.AchievementUnlock) {
	sort.Slice(unlocks, func(i, j int) bool {
		if unlocks[i].UnlockedAt.Equal(unlocks[j].UnlockedAt) {
			return unlocks[i].AchievementKey < unlocks[j].AchievementKey
		}
		return unlocks[i].UnlockedAt.Before(unlocks[j].UnlockedAt)
	})
}
