package models

import (
	"time"
)

// EventKind names a real-time event pushed to clients
type EventKind string

const (
	EventKindCharacterUpdate     EventKind = "character:update"
	EventKindConfinementEnter    EventKind = "confinement:enter"
	EventKindConfinementLeave    EventKind = "confinement:leave"
	EventKindCrimeResult         EventKind = "crime:result"
	EventKindAchievementUnlocked EventKind = "achievement:unlocked"
)

// AggregateTopic names a broadcast counter topic
type AggregateTopic string

const (
	AggregateTopicConfinementCount AggregateTopic = "confinement:count"
)

// Event is the envelope delivered to transports
type Event struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	CharacterID string    `json:"character_id,omitempty"`
	Payload     any       `json:"payload"`
	SentAt      time.Time `json:"sent_at"`
}

// CharacterUpdatePayload is the HUD refresh pushed after a committed mutation
type CharacterUpdatePayload struct {
	Energy    int   `json:"energy"`
	MaxEnergy int   `json:"max_energy"`
	Money     int64 `json:"money"`
	Level     int   `json:"level"`
	XP        int   `json:"xp"`
	Version   int64 `json:"version"`
}

// NewCharacterUpdatePayload snapshots the HUD fields of c
func NewCharacterUpdatePayload(c *Character) *CharacterUpdatePayload {
	return &CharacterUpdatePayload{
		Energy:    c.Energy,
		MaxEnergy: c.MaxEnergy,
		Money:     c.Money,
		Level:     c.Level,
		XP:        c.XP,
		Version:   c.Version,
	}
}

type ConfinementEnterPayload struct {
	Type      ConfinementType `json:"type"`
	ReleaseAt time.Time       `json:"release_at"`
	Reason    string          `json:"reason,omitempty"`
}

type ConfinementLeavePayload struct {
	Type ConfinementType `json:"type"`

	// Paid is true when the release was bought early
	Paid bool `json:"paid"`
}

type CrimeResultPayload struct {
	CrimeID         string          `json:"crime_id"`
	Success         bool            `json:"success"`
	Reward          int64           `json:"reward"`
	EnergySpent     int             `json:"energy_spent"`
	ConfinementType ConfinementType `json:"confinement_type,omitempty"`
	ReleaseAt       *time.Time      `json:"release_at,omitempty"`
}

type AchievementUnlockedPayload struct {
	Key      string `json:"key"`
	XPReward int    `json:"xp_reward"`
}

type ConfinementCountPayload struct {
	Type  ConfinementType `json:"type"`
	Count int64           `json:"count"`
}
