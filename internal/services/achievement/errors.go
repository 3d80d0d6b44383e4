package achievement

import "github.com/KirkDiggler/lockup/internal/common/gameerr"

// AchievementError is a custom error type for achievement service errors
type AchievementError string

// Error implements the error interface
func (e AchievementError) Error() string {
	return string(e)
}

const (
	ErrNilConfig          AchievementError = "config cannot be nil"
	ErrNilLedger          AchievementError = "ledger cannot be nil"
	ErrNilAchievementRepo AchievementError = "achievement repository cannot be nil"
	ErrNilEvents          AchievementError = "event dispatcher cannot be nil"
	ErrNilClock           AchievementError = "clock cannot be nil"
	ErrNilUUIDGenerator   AchievementError = "UUID generator cannot be nil"
	ErrDuplicateRuleKey   AchievementError = "duplicate achievement key"
	ErrInvalidRule        AchievementError = "achievement rule needs a key and a predicate"
)

// ErrEmptyCharacterID is an invalid-input error, reported to callers as a bad request
var ErrEmptyCharacterID = gameerr.Invalid("character ID cannot be empty")
