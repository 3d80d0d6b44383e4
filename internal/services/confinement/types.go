package confinement

import (
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// State is the coarse confinement state of a character
type State string

const (
	StateFree     State = "free"
	StateConfined State = "confined"
)

// Config holds the dependencies of the confinement service
type Config struct {
	Ledger       ledger.Service
	Events       events.Service
	Achievements achievement.Service
	Clock        clock.Clock

	// Pricing is the early-release price table; nil uses DefaultPricing
	Pricing *Pricing

	Logger *zerolog.Logger
}

// Status is the query view of a character's confinement
type Status struct {
	State            State                  `json:"state"`
	Type             models.ConfinementType `json:"type,omitempty"`
	RemainingSeconds int64                  `json:"remaining_seconds,omitempty"`
	ReleaseAt        *time.Time             `json:"release_at,omitempty"`
	EarlyReleaseCost int64                  `json:"early_release_cost,omitempty"`
}

// GetStatusInput contains parameters for a status query
type GetStatusInput struct {
	CharacterID string
}

// GetStatusOutput contains the status
type GetStatusOutput struct {
	Status *Status
}

// ConfineInput contains parameters for confining a character
type ConfineInput struct {
	CharacterID     string
	Type            models.ConfinementType
	DurationSeconds int64
	Reason          string
}

// ConfineOutput contains the new record
type ConfineOutput struct {
	Confinement *models.Confinement
	Character   *models.Character
}

// PayEarlyReleaseInput contains parameters for buying a release
type PayEarlyReleaseInput struct {
	CharacterID string
}

// PayEarlyReleaseOutput contains the result of a paid release
type PayEarlyReleaseOutput struct {
	Cost      int64
	NewMoney  int64
	Released  *models.Confinement
	Character *models.Character
}

// ReleaseExpiredInput contains parameters for releasing an expired record
type ReleaseExpiredInput struct {
	CharacterID string
}

// ReleaseExpiredOutput reports the released record, nil if none, and the
// achievements the release unlocked
type ReleaseExpiredOutput struct {
	Released *models.Confinement
	Unlocked []string
}

// AnnounceTransitionInput describes a committed transition. Left and Entered
// may both be set when an expired record was replaced in one mutation.
type AnnounceTransitionInput struct {
	Character *models.Character
	Left      *models.Confinement
	Entered   *models.Confinement
	Paid      bool
}
