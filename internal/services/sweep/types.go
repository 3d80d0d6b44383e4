package sweep

import (
	"time"

	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/rs/zerolog"
)

const (
	DefaultInterval    = time.Minute
	DefaultConcurrency = 8
)

// Config holds the dependencies of the sweep
type Config struct {
	CharacterRepo characterRepo.Repository
	Confinement   confinement.Service
	Achievements  achievement.Service
	Events        events.Service

	// Interval between passes
	Interval time.Duration

	// Concurrency bounds how many characters are processed at once
	Concurrency int

	Logger *zerolog.Logger
}

// RunOnceOutput summarizes one pass
type RunOnceOutput struct {
	Checked  int
	Released int
	Unlocked int

	// Skipped counts characters that were busy and left for the next pass
	Skipped int
	Failed  int
}
