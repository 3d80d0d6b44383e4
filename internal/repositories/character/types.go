package character

import "github.com/KirkDiggler/lockup/internal/models"

// GetCharacterInput contains parameters for retrieving a character
type GetCharacterInput struct {
	CharacterID string
}

// SaveCharacterInput contains parameters for saving a character
type SaveCharacterInput struct {
	Character *models.Character

	// ExpectedVersion is the version the caller read; 0 for a new character
	ExpectedVersion int64
}

type ListCharacterIDsInput struct {
}

type ListCharacterIDsOutput struct {
	CharacterIDs []string
}

type CountConfinedInput struct {
}

type CountConfinedOutput struct {
	Counts map[models.ConfinementType]int64
}
