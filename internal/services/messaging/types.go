package messaging

import (
	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// Seed makes message selection repeatable in tests
	Seed int64
}

// GetCrimeResultMessageInput contains the resolved attempt to describe
type GetCrimeResultMessageInput struct {
	CharacterName string
	CrimeName     string
	Success       bool
	Reward        int64

	// ConfinementType is set when the failure put the character away
	ConfinementType  models.ConfinementType
	RemainingSeconds int64
}

// GetCrimeResultMessageOutput contains the crime result text
type GetCrimeResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetConfinementStatusMessageInput contains the status to describe
type GetConfinementStatusMessageInput struct {
	Confined         bool
	Type             models.ConfinementType
	RemainingSeconds int64
	EarlyReleaseCost int64
}

// GetConfinementStatusMessageOutput contains the status text
type GetConfinementStatusMessageOutput struct {
	Message string
}

// GetEarlyReleaseMessageInput contains the paid release to describe
type GetEarlyReleaseMessageInput struct {
	Type     models.ConfinementType
	Cost     int64
	NewMoney int64
}

// GetEarlyReleaseMessageOutput contains the release text
type GetEarlyReleaseMessageOutput struct {
	Title   string
	Message string
}

// GetAchievementMessageInput contains the unlocked achievement
type GetAchievementMessageInput struct {
	Name     string
	XPReward int
}

// GetAchievementMessageOutput contains the announcement text
type GetAchievementMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Kind is the engine error kind; empty means an unexpected failure
	Kind gameerr.Kind

	RemainingSeconds int64

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
