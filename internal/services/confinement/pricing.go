package confinement

import (
	"time"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
)

const (
	DefaultHospitalCostPerMinute int64 = 100
	DefaultJailCostPerMinute     int64 = 150
)

// Pricing holds the early-release price per started minute of each type
type Pricing struct {
	CostPerMinute map[models.ConfinementType]int64
}

// DefaultPricing returns the stock per-minute prices
func DefaultPricing() *Pricing {
	return &Pricing{
		CostPerMinute: map[models.ConfinementType]int64{
			models.ConfinementTypeHospital: DefaultHospitalCostPerMinute,
			models.ConfinementTypeJail:     DefaultJailCostPerMinute,
		},
	}
}

// Validate rejects negative prices
func (p *Pricing) Validate() error {
	for _, cost := range p.CostPerMinute {
		if cost < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}

// Cost is ceil(remainingSeconds / 60) * costPerMinute. It only ever falls as
// remaining shrinks and is 0 once nothing remains.
func (p *Pricing) Cost(t models.ConfinementType, remaining time.Duration) int64 {
	seconds := gameerr.CeilSeconds(remaining)
	if seconds == 0 {
		return 0
	}

	minutes := (seconds + 59) / 60
	return minutes * p.CostPerMinute[t]
}
