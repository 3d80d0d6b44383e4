package crime

import (
	"context"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/dice"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	catalog      catalog.Service
	ledger       ledger.Service
	confinement  confinement.Service
	achievements achievement.Service
	events       events.Service
	diceRoller   dice.Roller
	clock        clock.Clock
	log          zerolog.Logger
}

// New creates a new crime resolver
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	if cfg.Ledger == nil {
		return nil, ErrNilLedger
	}

	if cfg.Confinement == nil {
		return nil, ErrNilConfinement
	}

	if cfg.Achievements == nil {
		return nil, ErrNilAchievements
	}

	if cfg.Events == nil {
		return nil, ErrNilEvents
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		catalog:      cfg.Catalog,
		ledger:       cfg.Ledger,
		confinement:  cfg.Confinement,
		achievements: cfg.Achievements,
		events:       cfg.Events,
		diceRoller:   cfg.DiceRoller,
		clock:        cfg.Clock,
		log:          logger.OrNop(cfg.Logger),
	}, nil
}

// AttemptCrime resolves one attempt. Preconditions are checked in a fixed
// order against the locked snapshot and the first failure wins; nothing is
// written unless every check passes.
func (s *service) AttemptCrime(ctx context.Context, input *AttemptCrimeInput) (*AttemptCrimeOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrEmptyCharacterID
	}

	def, err := s.catalog.Get(input.CrimeID)
	if err != nil {
		return nil, err
	}

	var (
		out      *AttemptCrimeOutput
		released *models.Confinement
	)

	result, err := s.ledger.ApplyMutation(ctx, &ledger.ApplyMutationInput{
		CharacterID: input.CharacterID,
		Mutate: func(c *models.Character) error {
			now := s.clock.Now()
			released = confinement.ExpireIfDue(c, now)

			if err := checkPreconditions(c, def, now); err != nil {
				return err
			}

			out = s.resolve(c, def, now)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	character := result.Character
	out.Character = character

	s.log.Info().
		Str("character_id", character.ID).
		Str("crime_id", def.ID).
		Str("outcome", string(out.Outcome)).
		Int("roll", out.Roll).
		Int64("reward", out.Reward).
		Msg("crime resolved")

	s.confinement.AnnounceTransition(ctx, &confinement.AnnounceTransitionInput{
		Character: character,
		Left:      released,
		Entered:   out.Confinement,
	})

	s.events.Publish(ctx, &events.PublishInput{
		CharacterID: character.ID,
		Kind:        models.EventKindCrimeResult,
		Payload:     resultPayload(def, out),
	})
	s.events.Publish(ctx, &events.PublishInput{
		CharacterID: character.ID,
		Kind:        models.EventKindCharacterUpdate,
		Payload:     models.NewCharacterUpdatePayload(character),
	})

	evaluated, err := s.achievements.Evaluate(ctx, &achievement.EvaluateInput{
		CharacterID: character.ID,
	})
	if err != nil {
		// The sweep catches up on anything missed here
		s.log.Warn().Err(err).Str("character_id", character.ID).Msg("achievement evaluation failed")
	} else {
		out.Achievements = evaluated.Unlocked
	}

	return out, nil
}

// checkPreconditions returns the first violated precondition
func checkPreconditions(c *models.Character, def *models.CrimeDefinition, now time.Time) error {
	if c.Level < def.RequiredLevel {
		return gameerr.LevelTooLow(c.Level, def.RequiredLevel)
	}

	if c.Confinement != nil {
		return gameerr.Confined(c.Confinement.Type.Describe(), c.Confinement.Remaining(now))
	}

	if next, ok := c.Cooldowns[def.ID]; ok && now.Before(next) {
		return gameerr.OnCooldown(def.ID, next.Sub(now))
	}

	if c.Energy < def.EnergyCost {
		return gameerr.InsufficientEnergy(c.Energy, def.EnergyCost)
	}

	return nil
}

// resolve applies the attempt to the working copy
func (s *service) resolve(c *models.Character, def *models.CrimeDefinition, now time.Time) *AttemptCrimeOutput {
	c.Energy -= def.EnergyCost

	if c.Cooldowns == nil {
		c.Cooldowns = make(map[string]time.Time)
	}
	c.Cooldowns[def.ID] = now.Add(time.Duration(def.CooldownSeconds) * time.Second)

	roll := s.diceRoller.Percent()
	out := &AttemptCrimeOutput{
		Roll:        roll,
		EnergySpent: def.EnergyCost,
	}

	if roll < def.SuccessChanceBase {
		reward := s.diceRoller.Between(def.MinReward, def.MaxReward)

		c.Credit(reward)
		c.CrimesCommitted++
		c.XP += def.XPReward

		out.Outcome = OutcomeSuccess
		out.Reward = reward
		out.XPGained = def.XPReward
		return out
	}

	c.CrimesFailed++
	out.Outcome = OutcomeFailure

	if def.FailureConfinementType != models.ConfinementTypeNone {
		duration := time.Duration(def.FailureConfinementDurationSeconds) * time.Second
		if confinement.Enter(c, def.FailureConfinementType, duration, now, "crime:"+def.ID) {
			out.Confinement = c.Confinement
		}
	}

	return out
}

func resultPayload(def *models.CrimeDefinition, out *AttemptCrimeOutput) *models.CrimeResultPayload {
	payload := &models.CrimeResultPayload{
		CrimeID:     def.ID,
		Success:     out.Outcome == OutcomeSuccess,
		Reward:      out.Reward,
		EnergySpent: out.EnergySpent,
	}

	if out.Confinement != nil {
		releaseAt := out.Confinement.ReleaseAt
		payload.ConfinementType = out.Confinement.Type
		payload.ReleaseAt = &releaseAt
	}

	return payload
}

// ListAvailability evaluates the same preconditions without locking or
// writing anything
func (s *service) ListAvailability(ctx context.Context, input *ListAvailabilityInput) (*ListAvailabilityOutput, error) {
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

	// Work on a copy so an expired record can be ignored without touching
	// the loaded snapshot
	character := loaded.Character.Clone()
	confinement.ExpireIfDue(character, now)

	crimes := s.catalog.List()
	out := make([]*Availability, 0, len(crimes))

	for _, def := range crimes {
		availability := &Availability{
			Crime:    def,
			Eligible: true,
		}

		if next, ok := character.Cooldowns[def.ID]; ok && now.Before(next) {
			availability.CooldownRemainingSeconds = gameerr.CeilSeconds(next.Sub(now))
		}

		if err := checkPreconditions(character, def, now); err != nil {
			availability.Eligible = false
			availability.Blocker = gameerr.KindOf(err)
		}

		out = append(out, availability)
	}

	return &ListAvailabilityOutput{
		Crimes: out,
	}, nil
}
