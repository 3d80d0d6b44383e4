package catalog

import "github.com/KirkDiggler/lockup/internal/models"

// Config holds the crimes the catalog is built from. Nil or empty Crimes
// falls back to DefaultCrimes.
type Config struct {
	Crimes []*models.CrimeDefinition
}

// DefaultCrimes is the stock catalog
func DefaultCrimes() []*models.CrimeDefinition {
	return []*models.CrimeDefinition{
		{
			ID:                "pickpocket",
			Name:              "Pickpocket a tourist",
			RequiredLevel:     1,
			EnergyCost:        5,
			CooldownSeconds:   30,
			SuccessChanceBase: 85,
			MinReward:         10,
			MaxReward:         60,
			XPReward:          2,
		},
		{
			ID:                                "shoplift",
			Name:                              "Shoplift from the corner store",
			RequiredLevel:                     1,
			EnergyCost:                        10,
			CooldownSeconds:                   60,
			SuccessChanceBase:                 70,
			MinReward:                         50,
			MaxReward:                         150,
			XPReward:                          5,
			FailureConfinementType:            models.ConfinementTypeJail,
			FailureConfinementDurationSeconds: 120,
		},
		{
			ID:                                "mugging",
			Name:                              "Mug a passerby",
			RequiredLevel:                     3,
			EnergyCost:                        15,
			CooldownSeconds:                   180,
			SuccessChanceBase:                 60,
			MinReward:                         150,
			MaxReward:                         400,
			XPReward:                          10,
			FailureConfinementType:            models.ConfinementTypeHospital,
			FailureConfinementDurationSeconds: 300,
		},
		{
			ID:                                "car_theft",
			Name:                              "Steal a parked car",
			RequiredLevel:                     5,
			EnergyCost:                        25,
			CooldownSeconds:                   600,
			SuccessChanceBase:                 45,
			MinReward:                         800,
			MaxReward:                         2000,
			XPReward:                          25,
			FailureConfinementType:            models.ConfinementTypeJail,
			FailureConfinementDurationSeconds: 600,
		},
		{
			ID:                                "bank_heist",
			Name:                              "Rob the downtown bank",
			RequiredLevel:                     10,
			EnergyCost:                        50,
			CooldownSeconds:                   3600,
			SuccessChanceBase:                 25,
			MinReward:                         10000,
			MaxReward:                         50000,
			XPReward:                          100,
			FailureConfinementType:            models.ConfinementTypeJail,
			FailureConfinementDurationSeconds: 1800,
		},
	}
}
