package models

import (
	"math"
	"time"
)

// Character is the authoritative mutable state of a player's character.
// It is only ever written through the character ledger.
type Character struct {
	// ID is the unique identifier for the character
	ID string `json:"id"`

	// Name is the display name of the character
	Name string `json:"name"`

	// Energy is spent on crimes and always stays within [0, MaxEnergy]
	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`

	// Money and Blackcoins never go negative
	Money      int64 `json:"money"`
	Blackcoins int64 `json:"blackcoins"`

	Level    int `json:"level"`
	XP       int `json:"xp"`
	Strength int `json:"strength"`
	Defense  int `json:"defense"`

	// Cumulative counters
	CrimesCommitted int   `json:"crimes_committed"`
	CrimesFailed    int   `json:"crimes_failed"`
	KillCount       int   `json:"kill_count"`
	HospitalVisits  int   `json:"hospital_visits"`
	JailVisits      int   `json:"jail_visits"`
	EarlyReleases   int   `json:"early_releases"`
	TotalEarned     int64 `json:"total_earned"`

	// Confinement is nil while the character is free
	Confinement *Confinement `json:"confinement,omitempty"`

	// Cooldowns maps a crime ID to the time it becomes eligible again
	Cooldowns map[string]time.Time `json:"cooldowns,omitempty"`

	// Achievements maps an achievement key to when it was unlocked
	Achievements map[string]time.Time `json:"achievements,omitempty"`

	// Version is incremented on every committed mutation
	Version int64 `json:"version"`

	// UpdatedAt is when the character was last mutated
	UpdatedAt time.Time `json:"updated_at"`
}

// IsConfined reports whether a confinement record exists. It does not look at
// the clock; expired records are cleared by the confinement manager.
func (c *Character) IsConfined() bool {
	return c.Confinement != nil
}

// HasAchievement reports whether key is recorded on the character
func (c *Character) HasAchievement(key string) bool {
	_, ok := c.Achievements[key]
	return ok
}

// Credit adds a non-negative amount to Money and TotalEarned, saturating at
// math.MaxInt64 instead of wrapping
func (c *Character) Credit(amount int64) {
	if amount <= 0 {
		return
	}
	c.Money = saturatingAdd(c.Money, amount)
	c.TotalEarned = saturatingAdd(c.TotalEarned, amount)
}

func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Clone returns a deep copy so a mutation can be discarded without touching
// the original snapshot
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	out := *c

	if c.Confinement != nil {
		conf := *c.Confinement
		out.Confinement = &conf
	}

	if c.Cooldowns != nil {
		out.Cooldowns = make(map[string]time.Time, len(c.Cooldowns))
		for k, v := range c.Cooldowns {
			out.Cooldowns[k] = v
		}
	}

	if c.Achievements != nil {
		out.Achievements = make(map[string]time.Time, len(c.Achievements))
		for k, v := range c.Achievements {
			out.Achievements[k] = v
		}
	}

	return &out
}

// Validate checks the invariants every committed character must hold
func (c *Character) Validate() error {
	switch {
	case c.ID == "":
		return ModelError("character ID cannot be empty")
	case c.MaxEnergy < 0:
		return ModelError("max energy cannot be negative")
	case c.Energy < 0 || c.Energy > c.MaxEnergy:
		return ModelError("energy out of range")
	case c.Money < 0:
		return ModelError("money cannot be negative")
	case c.Blackcoins < 0:
		return ModelError("blackcoins cannot be negative")
	}

	if c.Confinement != nil {
		return c.Confinement.Validate()
	}

	return nil
}
