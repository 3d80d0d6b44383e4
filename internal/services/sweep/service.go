package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sweeper releases expired confinements and catches up on achievements for
// every character at a fixed interval. It goes through the same services as
// interactive requests, so it takes the same per-character locks.
type Sweeper struct {
	characterRepo characterRepo.Repository
	confinement   confinement.Service
	achievements  achievement.Service
	events        events.Service
	interval      time.Duration
	concurrency   int
	log           zerolog.Logger
}

// New creates a new sweeper
func New(cfg *Config) (*Sweeper, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.CharacterRepo == nil {
		return nil, ErrNilCharacterRepo
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

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Sweeper{
		characterRepo: cfg.CharacterRepo,
		confinement:   cfg.Confinement,
		achievements:  cfg.Achievements,
		events:        cfg.Events,
		interval:      interval,
		concurrency:   concurrency,
		log:           logger.OrNop(cfg.Logger),
	}, nil
}

// Run performs a pass every interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := s.RunOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("sweep failed")
				continue
			}
			s.log.Debug().
				Int("checked", out.Checked).
				Int("released", out.Released).
				Int("unlocked", out.Unlocked).
				Int("skipped", out.Skipped).
				Int("failed", out.Failed).
				Msg("sweep finished")
		}
	}
}

// RunOnce visits every character once. Per-character failures are logged and
// counted; only failing to list characters fails the pass.
func (s *Sweeper) RunOnce(ctx context.Context) (*RunOnceOutput, error) {
	listed, err := s.characterRepo.ListCharacterIDs(ctx, &characterRepo.ListCharacterIDsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	var released, unlocked, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range listed.CharacterIDs {
		g.Go(func() error {
			r, u, err := s.sweepCharacter(gctx, id)
			released.Add(int64(r))
			unlocked.Add(int64(u))

			switch {
			case err == nil:
			case errors.Is(err, gameerr.ErrBusy):
				skipped.Add(1)
			case errors.Is(err, gameerr.ErrNotFound):
				// Deleted between list and visit
			default:
				failed.Add(1)
				s.log.Warn().Err(err).Str("character_id", id).Msg("sweep of character failed")
			}
			return nil
		})
	}

	// Goroutines never return an error
	_ = g.Wait()

	return &RunOnceOutput{
		Checked:  len(listed.CharacterIDs),
		Released: int(released.Load()),
		Unlocked: int(unlocked.Load()),
		Skipped:  int(skipped.Load()),
		Failed:   int(failed.Load()),
	}, nil
}

func (s *Sweeper) sweepCharacter(ctx context.Context, characterID string) (released, unlocked int, err error) {
	out, err := s.confinement.ReleaseExpired(ctx, &confinement.ReleaseExpiredInput{
		CharacterID: characterID,
	})
	if err != nil {
		return 0, 0, err
	}

	// A release already ran the rules
	if out.Released != nil {
		return 1, len(out.Unlocked), nil
	}

	evaluated, err := s.achievements.Evaluate(ctx, &achievement.EvaluateInput{
		CharacterID: characterID,
	})
	if err != nil {
		return 0, 0, err
	}

	return 0, len(evaluated.Unlocked), nil
}

// SeedCounters loads the confined counts from storage into the dispatcher.
// Afterwards counters only move by transitions.
func (s *Sweeper) SeedCounters(ctx context.Context) error {
	out, err := s.characterRepo.CountConfined(ctx, &characterRepo.CountConfinedInput{})
	if err != nil {
		return fmt.Errorf("failed to count confined characters: %w", err)
	}

	s.events.SeedConfinementCounts(ctx, &events.SeedConfinementCountsInput{
		Counts: out.Counts,
	})

	s.log.Info().Interface("counts", out.Counts).Msg("confinement counters seeded")
	return nil
}
