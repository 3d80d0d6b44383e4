package models

import "fmt"

const (
	// MaxCrimeReward bounds a single payout so balances stay far from overflow
	MaxCrimeReward int64 = 1 << 40

	// MaxDurationSeconds bounds cooldowns and confinements to what a
	// time.Duration can hold with room to spare
	MaxDurationSeconds int64 = 10 * 365 * 24 * 60 * 60
)

// CrimeDefinition is an immutable catalog entry. Every crime is resolved by
// the same algorithm; the fields here are the only thing that varies.
type CrimeDefinition struct {
	ID                string `json:"id" mapstructure:"id"`
	Name              string `json:"name" mapstructure:"name"`
	RequiredLevel     int    `json:"required_level" mapstructure:"required_level"`
	EnergyCost        int    `json:"energy_cost" mapstructure:"energy_cost"`
	CooldownSeconds   int64  `json:"cooldown_seconds" mapstructure:"cooldown_seconds"`
	SuccessChanceBase int    `json:"success_chance_base" mapstructure:"success_chance_base"`
	MinReward         int64  `json:"min_reward" mapstructure:"min_reward"`
	MaxReward         int64  `json:"max_reward" mapstructure:"max_reward"`
	XPReward          int    `json:"xp_reward" mapstructure:"xp_reward"`

	FailureConfinementType            ConfinementType `json:"failure_confinement_type" mapstructure:"failure_confinement_type"`
	FailureConfinementDurationSeconds int64           `json:"failure_confinement_duration_seconds" mapstructure:"failure_confinement_duration_seconds"`
}

// Validate checks the catalog invariants
func (d *CrimeDefinition) Validate() error {
	switch {
	case d.ID == "":
		return ModelError("crime ID cannot be empty")
	case d.RequiredLevel < 0:
		return fmt.Errorf("crime %s: required level cannot be negative", d.ID)
	case d.EnergyCost < 0:
		return fmt.Errorf("crime %s: energy cost cannot be negative", d.ID)
	case d.CooldownSeconds < 0:
		return fmt.Errorf("crime %s: cooldown cannot be negative", d.ID)
	case d.CooldownSeconds > MaxDurationSeconds:
		return fmt.Errorf("crime %s: cooldown exceeds %d seconds", d.ID, MaxDurationSeconds)
	case d.SuccessChanceBase < 0 || d.SuccessChanceBase > 100:
		return fmt.Errorf("crime %s: success chance must be within [0,100]", d.ID)
	case d.MinReward < 0:
		return fmt.Errorf("crime %s: reward cannot be negative", d.ID)
	case d.MinReward > d.MaxReward:
		return fmt.Errorf("crime %s: min reward exceeds max reward", d.ID)
	case d.MaxReward > MaxCrimeReward:
		return fmt.Errorf("crime %s: max reward exceeds %d", d.ID, MaxCrimeReward)
	case d.XPReward < 0:
		return fmt.Errorf("crime %s: xp reward cannot be negative", d.ID)
	}

	if d.FailureConfinementType != ConfinementTypeNone {
		if !d.FailureConfinementType.Valid() {
			return fmt.Errorf("crime %s: unknown confinement type %q", d.ID, d.FailureConfinementType)
		}
		if d.FailureConfinementDurationSeconds <= 0 {
			return fmt.Errorf("crime %s: confinement duration must be positive", d.ID)
		}
		if d.FailureConfinementDurationSeconds > MaxDurationSeconds {
			return fmt.Errorf("crime %s: confinement duration exceeds %d seconds", d.ID, MaxDurationSeconds)
		}
	}

	return nil
}
