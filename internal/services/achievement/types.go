package achievement

import (
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/uuid"
	"github.com/KirkDiggler/lockup/internal/models"
	achievementRepo "github.com/KirkDiggler/lockup/internal/repositories/achievement"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/rs/zerolog"
)

// Config holds the dependencies of the achievement service
type Config struct {
	Ledger          ledger.Service
	AchievementRepo achievementRepo.Repository
	Events          events.Service
	Clock           clock.Clock
	UUIDGenerator   uuid.UUID

	// Rules is the rule set; nil uses DefaultRules
	Rules *RuleSet

	Logger *zerolog.Logger
}

// EvaluateInput contains parameters for evaluating a character
type EvaluateInput struct {
	CharacterID string
}

// EvaluateOutput lists the keys unlocked by this call
type EvaluateOutput struct {
	Unlocked []string
}

// ListAchievementsInput contains parameters for listing achievements
type ListAchievementsInput struct {
	CharacterID string
}

// AchievementStatus is one rule with the character's unlock state
type AchievementStatus struct {
	Key         string                     `json:"key"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    models.AchievementCategory `json:"category"`
	XPReward    int                        `json:"xp_reward"`
	Unlocked    bool                       `json:"unlocked"`
	UnlockedAt  *time.Time                 `json:"unlocked_at,omitempty"`
}

// ListAchievementsOutput contains every rule in rule-set order
type ListAchievementsOutput struct {
	Achievements []*AchievementStatus
}
