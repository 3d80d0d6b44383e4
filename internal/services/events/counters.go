package events

import (
	"context"
	"sync/atomic"

	"github.com/KirkDiggler/lockup/internal/models"
)

// CounterStore holds the per-type confinement counts. The dispatcher keeps
// them in process unless Config.Counters points at a shared store.
type CounterStore interface {
	// Add applies delta and returns the new value
	Add(ctx context.Context, t models.ConfinementType, delta int64) (int64, error)
	Set(ctx context.Context, t models.ConfinementType, count int64) error
	Get(ctx context.Context, t models.ConfinementType) (int64, error)
}

// localCounters is the in-process CounterStore; only valid for a single instance
type localCounters struct {
	counters map[models.ConfinementType]*atomic.Int64
}

// newLocalCounters fixes the counter set up front so no method touches the map
func newLocalCounters() *localCounters {
	counters := make(map[models.ConfinementType]*atomic.Int64, len(models.ConfinementTypes))
	for _, t := range models.ConfinementTypes {
		counters[t] = new(atomic.Int64)
	}
	return &localCounters{counters: counters}
}

func (l *localCounters) counter(t models.ConfinementType) (*atomic.Int64, error) {
	counter, ok := l.counters[t]
	if !ok {
		return nil, ErrUnknownConfinementType
	}
	return counter, nil
}

func (l *localCounters) Add(_ context.Context, t models.ConfinementType, delta int64) (int64, error) {
	counter, err := l.counter(t)
	if err != nil {
		return 0, err
	}
	return counter.Add(delta), nil
}

func (l *localCounters) Set(_ context.Context, t models.ConfinementType, count int64) error {
	counter, err := l.counter(t)
	if err != nil {
		return err
	}
	counter.Store(count)
	return nil
}

func (l *localCounters) Get(_ context.Context, t models.ConfinementType) (int64, error) {
	counter, err := l.counter(t)
	if err != nil {
		return 0, err
	}
	return counter.Load(), nil
}
