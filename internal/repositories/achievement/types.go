package achievement

import "github.com/KirkDiggler/lockup/internal/models"

// InsertUnlockInput contains parameters for recording an unlock
type InsertUnlockInput struct {
	Unlock *models.AchievementUnlock
}

// InsertUnlockOutput reports whether the row was new
type InsertUnlockOutput struct {
	Inserted bool
}

// ListUnlocksInput contains parameters for listing a character's unlocks
type ListUnlocksInput struct {
	CharacterID string
}

// ListUnlocksOutput contains the unlocks of a character
type ListUnlocksOutput struct {
	Unlocks []*models.AchievementUnlock
}
