package crime

import "github.com/KirkDiggler/lockup/internal/common/gameerr"

// CrimeError is a custom error type for resolver construction errors
type CrimeError string

// Error implements the error interface
func (e CrimeError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       CrimeError = "config cannot be nil"
	ErrNilCatalog      CrimeError = "crime catalog cannot be nil"
	ErrNilLedger       CrimeError = "ledger cannot be nil"
	ErrNilConfinement  CrimeError = "confinement service cannot be nil"
	ErrNilAchievements CrimeError = "achievement service cannot be nil"
	ErrNilEvents       CrimeError = "event dispatcher cannot be nil"
	ErrNilDiceRoller   CrimeError = "dice roller cannot be nil"
	ErrNilClock        CrimeError = "clock cannot be nil"
)

// ErrEmptyCharacterID is an invalid-input error, reported to callers as a bad request
var ErrEmptyCharacterID = gameerr.Invalid("character ID cannot be empty")
