package events

import (
	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/uuid"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/rs/zerolog"
)

// DefaultBufferSize is the queue depth used when Config.BufferSize is unset
const DefaultBufferSize = 1024

// Config holds the dependencies of the dispatcher
type Config struct {
	Transports    []Transport
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// BufferSize bounds queued deliveries; events beyond it are dropped
	BufferSize int

	// Counters defaults to in-process counts. Instances sharing a broadcast
	// channel must share a store too or each one reports its own count.
	Counters CounterStore

	Logger *zerolog.Logger
}

// PublishInput contains a per-character event
type PublishInput struct {
	CharacterID string
	Kind        models.EventKind
	Payload     any
}

// PublishAggregateInput contains a broadcast topic update
type PublishAggregateInput struct {
	Topic   models.AggregateTopic
	Payload any
}

// RecordConfinementChangeInput contains a counter adjustment
type RecordConfinementChangeInput struct {
	Type  models.ConfinementType
	Delta int64
}

// SeedConfinementCountsInput contains the counts to start from
type SeedConfinementCountsInput struct {
	Counts map[models.ConfinementType]int64
}
