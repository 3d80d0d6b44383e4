package character

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lockup/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/lockup/internal/models"
)

// Repository defines the interface for character persistence
type Repository interface {
	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error)

	// SaveCharacter persists a character if the stored version still matches
	// ExpectedVersion, otherwise it returns ErrVersionConflict
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) error

	// ListCharacterIDs returns the IDs of every stored character
	ListCharacterIDs(ctx context.Context, input *ListCharacterIDsInput) (*ListCharacterIDsOutput, error)

	// CountConfined returns how many stored characters hold a confinement record, by type
	CountConfined(ctx context.Context, input *CountConfinedInput) (*CountConfinedOutput, error)
}
