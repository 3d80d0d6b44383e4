package crime

import (
	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/dice"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// Outcome is the result of a resolved attempt
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Config holds the dependencies of the resolver
type Config struct {
	Catalog      catalog.Service
	Ledger       ledger.Service
	Confinement  confinement.Service
	Achievements achievement.Service
	Events       events.Service
	DiceRoller   dice.Roller
	Clock        clock.Clock

	Logger *zerolog.Logger
}

// AttemptCrimeInput contains parameters for a crime attempt
type AttemptCrimeInput struct {
	CharacterID string
	CrimeID     string
}

// AttemptCrimeOutput contains the resolved attempt
type AttemptCrimeOutput struct {
	Outcome     Outcome
	Roll        int
	Reward      int64
	EnergySpent int
	XPGained    int

	// Confinement is set when the failure put the character away
	Confinement *models.Confinement

	// Character is the committed state after the attempt
	Character *models.Character

	// Achievements lists keys unlocked by the follow-up evaluation
	Achievements []string
}

// ListAvailabilityInput contains parameters for an availability query
type ListAvailabilityInput struct {
	CharacterID string
}

// Availability is one crime with the character's eligibility
type Availability struct {
	Crime    *models.CrimeDefinition `json:"crime"`
	Eligible bool                    `json:"eligible"`

	// Blocker is the first failing precondition, empty when eligible
	Blocker gameerr.Kind `json:"blocker,omitempty"`

	CooldownRemainingSeconds int64 `json:"cooldown_remaining_seconds,omitempty"`
}

// ListAvailabilityOutput contains availability for every catalog crime
type ListAvailabilityOutput struct {
	Crimes []*Availability
}
