package confinement

import (
	"time"

	"github.com/KirkDiggler/lockup/internal/models"
)

// The functions here edit a working copy inside a ledger mutation. They never
// persist anything themselves.

// Enter confines c unless it already holds a record. Confinement never
// stacks or extends, so an existing record is left as is and false returned.
func Enter(c *models.Character, t models.ConfinementType, duration time.Duration, now time.Time, reason string) bool {
	if c.Confinement != nil {
		return false
	}

	c.Confinement = &models.Confinement{
		Type:                    t,
		StartedAt:               now,
		ReleaseAt:               now.Add(duration),
		OriginalDurationSeconds: int64(duration / time.Second),
		Reason:                  reason,
	}

	switch t {
	case models.ConfinementTypeHospital:
		c.HospitalVisits++
	case models.ConfinementTypeJail:
		c.JailVisits++
	}

	return true
}

// ExpireIfDue clears a record whose release time has passed and returns it
func ExpireIfDue(c *models.Character, now time.Time) *models.Confinement {
	if c.Confinement == nil || !c.Confinement.Expired(now) {
		return nil
	}

	released := c.Confinement
	c.Confinement = nil
	return released
}
