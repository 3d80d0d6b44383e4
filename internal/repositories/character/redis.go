package character

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	characterKeyPrefix = "character:"
	confinedKeyPrefix  = "confined:"
	allCharactersKey   = "characters"
)

var (
	// ErrCharacterNotFound is returned when a character is not found
	ErrCharacterNotFound = errors.New("character not found")

	// ErrVersionConflict is returned when the stored version moved on since it was read
	ErrVersionConflict = errors.New("character version conflict")
)

// Config holds configuration for the Redis character repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
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

func characterKey(id string) string {
	return characterKeyPrefix + id
}

func confinedKey(t models.ConfinementType) string {
	return confinedKeyPrefix + string(t)
}

// GetCharacter retrieves a character by ID from Redis
func (r *redisRepository) GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	characterJSON, err := r.client.Get(ctx, characterKey(input.CharacterID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var character models.Character
	if err := json.Unmarshal([]byte(characterJSON), &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	return &character, nil
}

// SaveCharacter persists a character to Redis. The version check and the
// write run inside one WATCH/MULTI so a concurrent writer on another process
// makes this call fail instead of being overwritten.
func (r *redisRepository) SaveCharacter(ctx context.Context, input *SaveCharacterInput) error {
	if input == nil || input.Character == nil {
		return errors.New("input and character cannot be nil")
	}

	character := input.Character
	if character.ID == "" {
		return errors.New("character ID cannot be empty")
	}

	characterJSON, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	key := characterKey(character.ID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		var storedVersion int64

		stored, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			storedVersion = 0
		case err != nil:
			return fmt.Errorf("failed to read character: %w", err)
		default:
			var existing models.Character
			if err := json.Unmarshal([]byte(stored), &existing); err != nil {
				return fmt.Errorf("failed to unmarshal stored character: %w", err)
			}
			storedVersion = existing.Version
		}

		if storedVersion != input.ExpectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, characterJSON, 0)
			pipe.SAdd(ctx, allCharactersKey, character.ID)

			// Keep the confined index in step with the record
			for _, t := range models.ConfinementTypes {
				if character.Confinement != nil && character.Confinement.Type == t {
					pipe.SAdd(ctx, confinedKey(t), character.ID)
				} else {
					pipe.SRem(ctx, confinedKey(t), character.ID)
				}
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrVersionConflict
	}
	if err != nil && !errors.Is(err, ErrVersionConflict) {
		return fmt.Errorf("failed to save character: %w", err)
	}

	return err
}

// ListCharacterIDs returns the IDs of every stored character
func (r *redisRepository) ListCharacterIDs(ctx context.Context, input *ListCharacterIDsInput) (*ListCharacterIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, allCharactersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	return &ListCharacterIDsOutput{
		CharacterIDs: ids,
	}, nil
}

// CountConfined returns the size of each confined index
func (r *redisRepository) CountConfined(ctx context.Context, input *CountConfinedInput) (*CountConfinedOutput, error) {
	pipe := r.client.Pipeline()
	commands := make(map[models.ConfinementType]*redis.IntCmd, len(models.ConfinementTypes))

	for _, t := range models.ConfinementTypes {
		commands[t] = pipe.SCard(ctx, confinedKey(t))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to count confined characters: %w", err)
	}

	counts := make(map[models.ConfinementType]int64, len(commands))
	for t, cmd := range commands {
		counts[t] = cmd.Val()
	}

	return &CountConfinedOutput{
		Counts: counts,
	}, nil
}
