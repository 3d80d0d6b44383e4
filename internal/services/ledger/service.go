package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/models"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	characterRepo characterRepo.Repository
	clock         clock.Clock
	lockTimeout   time.Duration
	locks         *lockTable
	log           zerolog.Logger
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.CharacterRepo == nil {
		return nil, ErrNilCharacterRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	lockTimeout := cfg.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}

	return &service{
		characterRepo: cfg.CharacterRepo,
		clock:         cfg.Clock,
		lockTimeout:   lockTimeout,
		locks:         newLockTable(),
		log:           logger.OrNop(cfg.Logger),
	}, nil
}

// Load returns the committed snapshot without taking the lock
func (s *service) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	character, err := s.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &LoadOutput{
		Character: character,
	}, nil
}

// ApplyMutation serializes read-modify-write per character
func (s *service) ApplyMutation(ctx context.Context, input *ApplyMutationInput) (*ApplyMutationOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	if input.Mutate == nil {
		return nil, ErrNilMutation
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	release, err := s.locks.acquire(lockCtx, input.CharacterID)
	if err != nil {
		// A caller that went away is not a busy character
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Debug().Str("character_id", input.CharacterID).Msg("lock wait timed out")
		return nil, gameerr.Busy(input.CharacterID)
	}
	defer release()

	snapshot, err := s.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	working := snapshot.Clone()
	if err := input.Mutate(working); err != nil {
		if errors.Is(err, ErrNoChange) {
			return &ApplyMutationOutput{
				Character: snapshot,
				Previous:  snapshot,
			}, nil
		}
		return nil, err
	}

	if err := working.Validate(); err != nil {
		return nil, fmt.Errorf("mutation left character %s invalid: %w", input.CharacterID, err)
	}

	working.Version = snapshot.Version + 1
	working.UpdatedAt = s.clock.Now()

	err = s.characterRepo.SaveCharacter(ctx, &characterRepo.SaveCharacterInput{
		Character:       working,
		ExpectedVersion: snapshot.Version,
	})
	if err != nil {
		if errors.Is(err, characterRepo.ErrVersionConflict) {
			s.log.Warn().
				Str("character_id", input.CharacterID).
				Int64("version", snapshot.Version).
				Msg("character written elsewhere during mutation")
			return nil, gameerr.Busy(input.CharacterID)
		}
		return nil, fmt.Errorf("failed to save character: %w", err)
	}

	return &ApplyMutationOutput{
		Character: working,
		Previous:  snapshot,
		Changed:   true,
	}, nil
}

func (s *service) get(ctx context.Context, characterID string) (*models.Character, error) {
	character, err := s.characterRepo.GetCharacter(ctx, &characterRepo.GetCharacterInput{
		CharacterID: characterID,
	})
	if err != nil {
		if errors.Is(err, characterRepo.ErrCharacterNotFound) {
			return nil, gameerr.NotFound("character %s not found", characterID)
		}
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	return character, nil
}
