package models

import (
	"time"
)

// ConfinementType is the kind of confinement a character is held in
type ConfinementType string

const (
	// ConfinementTypeNone means a failed crime carries no confinement
	ConfinementTypeNone ConfinementType = ""

	// ConfinementTypeHospital indicates the character is hospitalized
	ConfinementTypeHospital ConfinementType = "hospital"

	// ConfinementTypeJail indicates the character is jailed
	ConfinementTypeJail ConfinementType = "jail"
)

// ConfinementTypes lists every real confinement type
var ConfinementTypes = []ConfinementType{ConfinementTypeHospital, ConfinementTypeJail}

// Valid reports whether t is a real confinement type
func (t ConfinementType) Valid() bool {
	return t == ConfinementTypeHospital || t == ConfinementTypeJail
}

// Describe returns the state as a word, e.g. "hospitalized"
func (t ConfinementType) Describe() string {
	switch t {
	case ConfinementTypeHospital:
		return "hospitalized"
	case ConfinementTypeJail:
		return "jailed"
	default:
		return "free"
	}
}

// Confinement is the active confinement record of a character
type Confinement struct {
	Type      ConfinementType `json:"type"`
	StartedAt time.Time       `json:"started_at"`
	ReleaseAt time.Time       `json:"release_at"`

	// OriginalDurationSeconds is the duration the record was created with
	OriginalDurationSeconds int64 `json:"original_duration_seconds"`

	// Reason records what caused the confinement, e.g. "crime:pickpocket"
	Reason string `json:"reason,omitempty"`
}

// Remaining is max(0, ReleaseAt - now)
func (c *Confinement) Remaining(now time.Time) time.Duration {
	d := c.ReleaseAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether now >= ReleaseAt
func (c *Confinement) Expired(now time.Time) bool {
	return !now.Before(c.ReleaseAt)
}

func (c *Confinement) Validate() error {
	if !c.Type.Valid() {
		return ModelError("invalid confinement type")
	}
	if !c.ReleaseAt.After(c.StartedAt) {
		return ModelError("confinement must release after it starts")
	}
	return nil
}
