package ledger

import (
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/models"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	"github.com/rs/zerolog"
)

// DefaultLockTimeout bounds how long a caller waits for a character's lock
const DefaultLockTimeout = 2 * time.Second

// Config holds the dependencies of the ledger service
type Config struct {
	CharacterRepo characterRepo.Repository
	Clock         clock.Clock

	// LockTimeout is how long ApplyMutation waits before returning Busy
	LockTimeout time.Duration

	Logger *zerolog.Logger
}

// MutationFunc edits a working copy of the character. Returning an error
// discards the copy; returning ErrNoChange discards it without failing.
type MutationFunc func(c *models.Character) error

// LoadInput contains parameters for loading a character
type LoadInput struct {
	CharacterID string
}

// LoadOutput contains the loaded character
type LoadOutput struct {
	Character *models.Character
}

// ApplyMutationInput contains parameters for mutating a character
type ApplyMutationInput struct {
	CharacterID string
	Mutate      MutationFunc
}

// ApplyMutationOutput contains the outcome of a mutation
type ApplyMutationOutput struct {
	// Character is the committed state, or the unchanged snapshot when
	// Changed is false
	Character *models.Character

	// Previous is the snapshot the mutation started from
	Previous *models.Character

	Changed bool
}
