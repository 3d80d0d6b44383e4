package confinement

import "github.com/KirkDiggler/lockup/internal/common/gameerr"

// ConfinementError is a custom error type for confinement service errors
type ConfinementError string

// Error implements the error interface
func (e ConfinementError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       ConfinementError = "config cannot be nil"
	ErrNilLedger       ConfinementError = "ledger cannot be nil"
	ErrNilEvents       ConfinementError = "event dispatcher cannot be nil"
	ErrNilAchievements ConfinementError = "achievement service cannot be nil"
	ErrNilClock        ConfinementError = "clock cannot be nil"
	ErrNegativePrice   ConfinementError = "cost per minute cannot be negative"
)

// ErrEmptyCharacterID is an invalid-input error, reported to callers as a bad request
var ErrEmptyCharacterID = gameerr.Invalid("character ID cannot be empty")
