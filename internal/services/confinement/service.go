package confinement

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	ledger       ledger.Service
	events       events.Service
	achievements achievement.Service
	clock        clock.Clock
	pricing      *Pricing
	log          zerolog.Logger
}

// New creates a new confinement service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Ledger == nil {
		return nil, ErrNilLedger
	}

	if cfg.Events == nil {
		return nil, ErrNilEvents
	}

	if cfg.Achievements == nil {
		return nil, ErrNilAchievements
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	pricing := cfg.Pricing
	if pricing == nil {
		pricing = DefaultPricing()
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}

	return &service{
		ledger:       cfg.Ledger,
		events:       cfg.Events,
		achievements: cfg.Achievements,
		clock:        cfg.Clock,
		pricing:      pricing,
		log:          logger.OrNop(cfg.Logger),
	}, nil
}

// GetStatus reads without the lock when the record is still active. An
// expired record is released through the ledger; if the character is busy
// the Free view is returned and the record is left for the next write.
func (s *service) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	loaded, err := s.ledger.Load(ctx, &ledger.LoadInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := loaded.Character.Confinement

	if record == nil {
		return &GetStatusOutput{Status: &Status{State: StateFree}}, nil
	}

	if !record.Expired(now) {
		return &GetStatusOutput{Status: s.confinedStatus(record, now)}, nil
	}

	_, err = s.ReleaseExpired(ctx, &ReleaseExpiredInput{
		CharacterID: input.CharacterID,
	})
	if err != nil && !errors.Is(err, gameerr.ErrBusy) {
		return nil, err
	}

	return &GetStatusOutput{Status: &Status{State: StateFree}}, nil
}

func (s *service) confinedStatus(record *models.Confinement, now time.Time) *Status {
	remaining := record.Remaining(now)
	releaseAt := record.ReleaseAt

	return &Status{
		State:            StateConfined,
		Type:             record.Type,
		RemainingSeconds: gameerr.CeilSeconds(remaining),
		ReleaseAt:        &releaseAt,
		EarlyReleaseCost: s.pricing.Cost(record.Type, remaining),
	}
}

// Confine enters confinement for an external cause such as a lost fight
func (s *service) Confine(ctx context.Context, input *ConfineInput) (*ConfineOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	if !input.Type.Valid() {
		return nil, gameerr.Invalid("unknown confinement type %q", input.Type)
	}

	if input.DurationSeconds <= 0 {
		return nil, gameerr.Invalid("confinement duration must be positive")
	}

	var left *models.Confinement

	result, err := s.ledger.ApplyMutation(ctx, &ledger.ApplyMutationInput{
		CharacterID: input.CharacterID,
		Mutate: func(c *models.Character) error {
			now := s.clock.Now()
			left = ExpireIfDue(c, now)

			duration := time.Duration(input.DurationSeconds) * time.Second
			if !Enter(c, input.Type, duration, now, input.Reason) {
				return gameerr.Confined(c.Confinement.Type.Describe(), c.Confinement.Remaining(now))
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	character := result.Character

	s.log.Info().
		Str("character_id", character.ID).
		Str("type", string(input.Type)).
		Int64("duration_seconds", input.DurationSeconds).
		Str("reason", input.Reason).
		Msg("character confined")

	s.AnnounceTransition(ctx, &AnnounceTransitionInput{
		Character: character,
		Left:      left,
		Entered:   character.Confinement,
	})
	s.publishUpdate(ctx, character)
	s.evaluate(ctx, character.ID)

	return &ConfineOutput{
		Confinement: character.Confinement,
		Character:   character,
	}, nil
}

// PayEarlyRelease debits money and clears the record in one mutation, so a
// failed debit never frees the character
func (s *service) PayEarlyRelease(ctx context.Context, input *PayEarlyReleaseInput) (*PayEarlyReleaseOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	var (
		cost     int64
		released *models.Confinement
		expired  bool
	)

	result, err := s.ledger.ApplyMutation(ctx, &ledger.ApplyMutationInput{
		CharacterID: input.CharacterID,
		Mutate: func(c *models.Character) error {
			now := s.clock.Now()
			cost, released, expired = 0, nil, false

			// Ran out while we waited: commit the natural release
			if gone := ExpireIfDue(c, now); gone != nil {
				released, expired = gone, true
				return nil
			}

			if c.Confinement == nil {
				return gameerr.AlreadyFree()
			}

			cost = s.pricing.Cost(c.Confinement.Type, c.Confinement.Remaining(now))
			if c.Money < cost {
				return gameerr.InsufficientFunds(c.Money, cost)
			}

			c.Money -= cost
			released = c.Confinement
			c.Confinement = nil
			c.EarlyReleases++
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	character := result.Character

	s.AnnounceTransition(ctx, &AnnounceTransitionInput{
		Character: character,
		Left:      released,
		Paid:      !expired,
	})
	s.evaluate(ctx, character.ID)

	if expired {
		return nil, gameerr.AlreadyFree()
	}

	s.log.Info().
		Str("character_id", character.ID).
		Str("type", string(released.Type)).
		Int64("cost", cost).
		Msg("early release paid")

	s.publishUpdate(ctx, character)

	return &PayEarlyReleaseOutput{
		Cost:      cost,
		NewMoney:  character.Money,
		Released:  released,
		Character: character,
	}, nil
}

// ReleaseExpired is a no-op for characters that are free or still confined
func (s *service) ReleaseExpired(ctx context.Context, input *ReleaseExpiredInput) (*ReleaseExpiredOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	var released *models.Confinement

	result, err := s.ledger.ApplyMutation(ctx, &ledger.ApplyMutationInput{
		CharacterID: input.CharacterID,
		Mutate: func(c *models.Character) error {
			released = ExpireIfDue(c, s.clock.Now())
			if released == nil {
				return ledger.ErrNoChange
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if !result.Changed {
		return &ReleaseExpiredOutput{}, nil
	}

	s.log.Debug().
		Str("character_id", input.CharacterID).
		Str("type", string(released.Type)).
		Msg("confinement expired")

	s.AnnounceTransition(ctx, &AnnounceTransitionInput{
		Character: result.Character,
		Left:      released,
	})
	unlocked := s.evaluate(ctx, input.CharacterID)

	return &ReleaseExpiredOutput{
		Released: released,
		Unlocked: unlocked,
	}, nil
}

func (s *service) AnnounceTransition(ctx context.Context, input *AnnounceTransitionInput) {
	if input == nil || input.Character == nil {
		return
	}

	if input.Left != nil {
		s.events.Publish(ctx, &events.PublishInput{
			CharacterID: input.Character.ID,
			Kind:        models.EventKindConfinementLeave,
			Payload: &models.ConfinementLeavePayload{
				Type: input.Left.Type,
				Paid: input.Paid,
			},
		})
		s.events.RecordConfinementChange(ctx, &events.RecordConfinementChangeInput{
			Type:  input.Left.Type,
			Delta: -1,
		})
	}

	if input.Entered != nil {
		s.events.Publish(ctx, &events.PublishInput{
			CharacterID: input.Character.ID,
			Kind:        models.EventKindConfinementEnter,
			Payload: &models.ConfinementEnterPayload{
				Type:      input.Entered.Type,
				ReleaseAt: input.Entered.ReleaseAt,
				Reason:    input.Entered.Reason,
			},
		})
		s.events.RecordConfinementChange(ctx, &events.RecordConfinementChangeInput{
			Type:  input.Entered.Type,
			Delta: 1,
		})
	}
}

func (s *service) publishUpdate(ctx context.Context, character *models.Character) {
	s.events.Publish(ctx, &events.PublishInput{
		CharacterID: character.ID,
		Kind:        models.EventKindCharacterUpdate,
		Payload:     models.NewCharacterUpdatePayload(character),
	})
}

// evaluate runs the achievement rules after a transition and returns the
// keys it unlocked; failures are logged
func (s *service) evaluate(ctx context.Context, characterID string) []string {
	out, err := s.achievements.Evaluate(ctx, &achievement.EvaluateInput{
		CharacterID: characterID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("character_id", characterID).Msg("achievement evaluation failed")
		return nil
	}
	return out.Unlocked
}
