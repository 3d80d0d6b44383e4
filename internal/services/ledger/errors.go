package ledger

import "github.com/KirkDiggler/lockup/internal/common/gameerr"

// LedgerError is a custom error type for ledger construction and mutation errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

const (
	// ErrNoChange may be returned by a MutationFunc to skip the write
	ErrNoChange LedgerError = "mutation made no change"

	ErrNilConfig        LedgerError = "config cannot be nil"
	ErrNilCharacterRepo LedgerError = "character repository cannot be nil"
	ErrNilClock         LedgerError = "clock cannot be nil"
	ErrNilMutation      LedgerError = "mutation cannot be nil"
)

// ErrEmptyCharacterID is an invalid-input error, reported to callers as a bad request
var ErrEmptyCharacterID = gameerr.Invalid("character ID cannot be empty")
