package events

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lockup/internal/services/events Service

import (
	"context"

	"github.com/KirkDiggler/lockup/internal/models"
)

// Service delivers events best-effort. No method blocks on a transport and
// no delivery failure is returned to the caller.
type Service interface {
	// Publish sends an event to one character's private channel
	Publish(ctx context.Context, input *PublishInput)

	// PublishAggregate sends a topic update to every observer
	PublishAggregate(ctx context.Context, input *PublishAggregateInput)

	// RecordConfinementChange atomically adjusts a confinement counter and
	// broadcasts the new value
	RecordConfinementChange(ctx context.Context, input *RecordConfinementChangeInput) int64

	// SeedConfinementCounts overwrites the counters, used once at startup
	SeedConfinementCounts(ctx context.Context, input *SeedConfinementCountsInput)

	// ConfinementCounts returns the current counter values
	ConfinementCounts(ctx context.Context) (map[models.ConfinementType]int64, error)
}

// Transport is a real-time delivery channel such as a websocket hub
type Transport interface {
	SendToCharacter(ctx context.Context, characterID string, message []byte) error
	Broadcast(ctx context.Context, message []byte) error
}
