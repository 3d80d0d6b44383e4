package achievement

import (
	"fmt"

	"github.com/KirkDiggler/lockup/internal/models"
)

// RuleSet is an immutable, ordered list of rules with unique keys
type RuleSet struct {
	rules []models.AchievementRule
}

// NewRuleSet validates rules and freezes them
func NewRuleSet(rules []models.AchievementRule) (*RuleSet, error) {
	seen := make(map[string]struct{}, len(rules))
	frozen := make([]models.AchievementRule, 0, len(rules))

	for _, rule := range rules {
		if rule.Key == "" || rule.Predicate == nil {
			return nil, ErrInvalidRule
		}
		if _, ok := seen[rule.Key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRuleKey, rule.Key)
		}
		seen[rule.Key] = struct{}{}
		frozen = append(frozen, rule)
	}

	return &RuleSet{rules: frozen}, nil
}

// Rules returns a copy of the rules in evaluation order
func (r *RuleSet) Rules() []models.AchievementRule {
	out := make([]models.AchievementRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len is the number of rules
func (r *RuleSet) Len() int {
	return len(r.rules)
}

// DefaultRules is the stock rule set
func DefaultRules() []models.AchievementRule {
	return []models.AchievementRule{
		{
			Key:         "first_crime",
			Name:        "First Offense",
			Description: "Commit your first crime",
			Category:    models.AchievementCategoryCrime,
			XPReward:    50,
			Predicate:   func(c *models.Character) bool { return c.CrimesCommitted >= 1 },
		},
		{
			Key:         "career_criminal",
			Name:        "Career Criminal",
			Description: "Commit 100 crimes",
			Category:    models.AchievementCategoryCrime,
			XPReward:    250,
			Predicate:   func(c *models.Character) bool { return c.CrimesCommitted >= 100 },
		},
		{
			Key:         "butterfingers",
			Name:        "Butterfingers",
			Description: "Fail 10 crimes",
			Category:    models.AchievementCategoryCrime,
			XPReward:    25,
			Predicate:   func(c *models.Character) bool { return c.CrimesFailed >= 10 },
		},
		{
			Key:         "jailbird",
			Name:        "Jailbird",
			Description: "Get jailed 10 times",
			Category:    models.AchievementCategoryConfinement,
			XPReward:    100,
			Predicate:   func(c *models.Character) bool { return c.JailVisits >= 10 },
		},
		{
			Key:         "frequent_patient",
			Name:        "Frequent Patient",
			Description: "Get hospitalized 10 times",
			Category:    models.AchievementCategoryConfinement,
			XPReward:    100,
			Predicate:   func(c *models.Character) bool { return c.HospitalVisits >= 10 },
		},
		{
			Key:         "bail_out",
			Name:        "Money Talks",
			Description: "Buy an early release",
			Category:    models.AchievementCategoryConfinement,
			XPReward:    30,
			Predicate:   func(c *models.Character) bool { return c.EarlyReleases >= 1 },
		},
		{
			Key:         "big_earner",
			Name:        "Big Earner",
			Description: "Earn 100,000 from crimes",
			Category:    models.AchievementCategoryWealth,
			XPReward:    150,
			Predicate:   func(c *models.Character) bool { return c.TotalEarned >= 100_000 },
		},
		{
			Key:         "millionaire",
			Name:        "Millionaire",
			Description: "Hold 1,000,000 in cash",
			Category:    models.AchievementCategoryWealth,
			XPReward:    500,
			Predicate:   func(c *models.Character) bool { return c.Money >= 1_000_000 },
		},
		{
			Key:         "level_10",
			Name:        "Made Man",
			Description: "Reach level 10",
			Category:    models.AchievementCategoryProgression,
			XPReward:    200,
			Predicate:   func(c *models.Character) bool { return c.Level >= 10 },
		},
		{
			Key:         "heavy_hitter",
			Name:        "Heavy Hitter",
			Description: "Train strength to 100",
			Category:    models.AchievementCategoryCombat,
			XPReward:    100,
			Predicate:   func(c *models.Character) bool { return c.Strength >= 100 },
		},
		{
			Key:         "first_blood",
			Name:        "First Blood",
			Description: "Win your first fight",
			Category:    models.AchievementCategoryCombat,
			XPReward:    50,
			Predicate:   func(c *models.Character) bool { return c.KillCount >= 1 },
		},
	}
}
