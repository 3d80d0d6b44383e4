package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/common/uuid"
	"github.com/KirkDiggler/lockup/internal/models"
	achievementRepo "github.com/KirkDiggler/lockup/internal/repositories/achievement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	ledger          ledger.Service
	achievementRepo achievementRepo.Repository
	events          events.Service
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	rules           *RuleSet
	log             zerolog.Logger
}

// New creates a new achievement service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Ledger == nil {
		return nil, ErrNilLedger
	}

	if cfg.AchievementRepo == nil {
		return nil, ErrNilAchievementRepo
	}

	if cfg.Events == nil {
		return nil, ErrNilEvents
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	rules := cfg.Rules
	if rules == nil {
		var err error
		rules, err = NewRuleSet(DefaultRules())
		if err != nil {
			return nil, err
		}
	}

	return &service{
		ledger:          cfg.Ledger,
		achievementRepo: cfg.AchievementRepo,
		events:          cfg.Events,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		rules:           rules,
		log:             logger.OrNop(cfg.Logger),
	}, nil
}

// Evaluate runs every rule inside one ledger mutation. The unlocked keys are
// written onto the character together with the XP they award, so the lock
// and the version check make the unlock a single step. Unlock rows are
// inserted afterwards and are idempotent.
func (s *service) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	stored, err := s.storedUnlocks(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	var unlocked []*models.AchievementRule

	result, err := s.ledger.ApplyMutation(ctx, &ledger.ApplyMutationInput{
		CharacterID: input.CharacterID,
		Mutate: func(c *models.Character) error {
			unlocked = unlocked[:0]
			now := s.clock.Now()
			synced := false

			for _, rule := range s.rules.rules {
				if c.HasAchievement(rule.Key) {
					continue
				}

				// Recorded in the store but missing on the character: take
				// the stored time and do not award XP a second time
				if row, ok := stored[rule.Key]; ok {
					setAchievement(c, rule.Key, row.UnlockedAt)
					synced = true
					continue
				}

				if !rule.Predicate(c) {
					continue
				}

				setAchievement(c, rule.Key, now)
				c.XP += rule.XPReward

				r := rule
				unlocked = append(unlocked, &r)
			}

			if len(unlocked) == 0 && !synced {
				return ledger.ErrNoChange
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	character := result.Character
	s.repairUnlocks(ctx, character, stored)

	keys := make([]string, 0, len(unlocked))
	for _, rule := range unlocked {
		keys = append(keys, rule.Key)

		s.events.Publish(ctx, &events.PublishInput{
			CharacterID: character.ID,
			Kind:        models.EventKindAchievementUnlocked,
			Payload: &models.AchievementUnlockedPayload{
				Key:      rule.Key,
				XPReward: rule.XPReward,
			},
		})
	}

	if len(unlocked) > 0 {
		s.log.Info().
			Str("character_id", character.ID).
			Strs("keys", keys).
			Msg("achievements unlocked")

		s.events.Publish(ctx, &events.PublishInput{
			CharacterID: character.ID,
			Kind:        models.EventKindCharacterUpdate,
			Payload:     models.NewCharacterUpdatePayload(character),
		})
	}

	return &EvaluateOutput{
		Unlocked: keys,
	}, nil
}

// repairUnlocks inserts a row for every achievement on the character that the
// store does not have yet. Failures are retried on the next evaluation.
func (s *service) repairUnlocks(ctx context.Context, character *models.Character, stored map[string]*models.AchievementUnlock) {
	for _, rule := range s.rules.rules {
		unlockedAt, ok := character.Achievements[rule.Key]
		if !ok {
			continue
		}
		if _, ok := stored[rule.Key]; ok {
			continue
		}

		_, err := s.achievementRepo.InsertUnlock(ctx, &achievementRepo.InsertUnlockInput{
			Unlock: &models.AchievementUnlock{
				ID:             s.uuidGenerator.NewUUID(),
				CharacterID:    character.ID,
				AchievementKey: rule.Key,
				XPReward:       rule.XPReward,
				UnlockedAt:     unlockedAt,
			},
		})
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("character_id", character.ID).
				Str("key", rule.Key).
				Msg("failed to record unlock")
		}
	}
}

func (s *service) storedUnlocks(ctx context.Context, characterID string) (map[string]*models.AchievementUnlock, error) {
	out, err := s.achievementRepo.ListUnlocks(ctx, &achievementRepo.ListUnlocksInput{
		CharacterID: characterID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}

	stored := make(map[string]*models.AchievementUnlock, len(out.Unlocks))
	for _, unlock := range out.Unlocks {
		stored[unlock.AchievementKey] = unlock
	}
	return stored, nil
}

// ListAchievements reports every rule with the character's unlock state
func (s *service) ListAchievements(ctx context.Context, input *ListAchievementsInput) (*ListAchievementsOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	loaded, err := s.ledger.Load(ctx, &ledger.LoadInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	stored, err := s.storedUnlocks(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	statuses := make([]*AchievementStatus, 0, s.rules.Len())
	for _, rule := range s.rules.rules {
		status := &AchievementStatus{
			Key:         rule.Key,
			Name:        rule.Name,
			Description: rule.Description,
			Category:    rule.Category,
			XPReward:    rule.XPReward,
		}

		if at, ok := loaded.Character.Achievements[rule.Key]; ok {
			status.Unlocked = true
			status.UnlockedAt = &at
		} else if row, ok := stored[rule.Key]; ok {
			at := row.UnlockedAt
			status.Unlocked = true
			status.UnlockedAt = &at
		}

		statuses = append(statuses, status)
	}

	return &ListAchievementsOutput{
		Achievements: statuses,
	}, nil
}

func setAchievement(c *models.Character, key string, at time.Time) {
	if c.Achievements == nil {
		c.Achievements = make(map[string]time.Time)
	}
	c.Achievements[key] = at
}
