package models

import (
	"time"
)

// AchievementCategory groups achievements for display
type AchievementCategory string

const (
	AchievementCategoryCrime       AchievementCategory = "crime"
	AchievementCategoryConfinement AchievementCategory = "confinement"
	AchievementCategoryWealth      AchievementCategory = "wealth"
	AchievementCategoryProgression AchievementCategory = "progression"
	AchievementCategoryCombat      AchievementCategory = "combat"
)

// AchievementRule is a static predicate over a character snapshot
type AchievementRule struct {
	Key         string
	Name        string
	Description string
	Category    AchievementCategory
	XPReward    int

	// Predicate must be pure; it is evaluated against a snapshot
	Predicate func(c *Character) bool
}

// AchievementUnlock records that a character satisfied a rule. It is created
// once per (CharacterID, AchievementKey) and never updated.
type AchievementUnlock struct {
	ID             string    `json:"id"`
	CharacterID    string    `json:"character_id"`
	AchievementKey string    `json:"achievement_key"`
	XPReward       int       `json:"xp_reward"`
	UnlockedAt     time.Time `json:"unlocked_at"`
}
