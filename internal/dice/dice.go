package dice

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/lockup/internal/dice Roller

// Roller provides the random draws used to resolve a crime
type Roller interface {
	// Percent returns a uniform roll in [0,100)
	Percent() int

	// Between returns a uniform value in [min,max], inclusive on both ends
	Between(min, max int64) int64
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller, safe for concurrent use
func New(cfg *Config) *roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

func (r *roller) Percent() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.random.Intn(100)
}

func (r *roller) Between(min, max int64) int64 {
	if max <= min {
		return min
	}

	// Unsigned so a span wider than MaxInt64 does not wrap
	span := uint64(max) - uint64(min)

	r.mu.Lock()
	defer r.mu.Unlock()

	var offset uint64
	if span < math.MaxInt64 {
		offset = uint64(r.random.Int63n(int64(span) + 1))
	} else {
		// Int63n cannot express the range; reject draws past it
		for offset = r.random.Uint64(); offset > span; offset = r.random.Uint64() {
		}
	}

	return int64(uint64(min) + offset)
}
