package events

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/common/uuid"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/rs/zerolog"
)

// delivery is one encoded message; an empty characterID means broadcast
type delivery struct {
	characterID string
	kind        string
	message     []byte
}

// dispatcher implements the Service interface
type dispatcher struct {
	transports    []Transport
	clock         clock.Clock
	uuidGenerator uuid.UUID
	queue         chan delivery
	counters      CounterStore
	dropped       atomic.Int64
	log           zerolog.Logger
}

// New creates a new event dispatcher. Deliveries start once Run is called.
func New(cfg *Config) (*dispatcher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if len(cfg.Transports) == 0 {
		return nil, ErrNoTransports
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	var counters CounterStore = newLocalCounters()
	if cfg.Counters != nil {
		counters = cfg.Counters
	}

	return &dispatcher{
		transports:    cfg.Transports,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		queue:         make(chan delivery, bufferSize),
		counters:      counters,
		log:           logger.OrNop(cfg.Logger),
	}, nil
}

// Run delivers queued events until ctx is done
func (d *dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		}
	}
}

func (d *dispatcher) deliver(ctx context.Context, msg delivery) {
	for _, transport := range d.transports {
		var err error
		if msg.characterID == "" {
			err = transport.Broadcast(ctx, msg.message)
		} else {
			err = transport.SendToCharacter(ctx, msg.characterID, msg.message)
		}
		if err != nil {
			d.log.Warn().
				Err(err).
				Str("kind", msg.kind).
				Str("character_id", msg.characterID).
				Msg("event delivery failed")
		}
	}
}

func (d *dispatcher) Publish(ctx context.Context, input *PublishInput) {
	if input == nil || input.CharacterID == "" {
		return
	}

	d.enqueue(input.CharacterID, string(input.Kind), input.Payload)
}

func (d *dispatcher) PublishAggregate(ctx context.Context, input *PublishAggregateInput) {
	if input == nil {
		return
	}

	d.enqueue("", string(input.Topic), input.Payload)
}

func (d *dispatcher) enqueue(characterID, kind string, payload any) {
	message, err := json.Marshal(&models.Event{
		ID:          d.uuidGenerator.NewUUID(),
		Kind:        kind,
		CharacterID: characterID,
		Payload:     payload,
		SentAt:      d.clock.Now(),
	})
	if err != nil {
		d.log.Warn().Err(err).Str("kind", kind).Msg("failed to encode event")
		return
	}

	select {
	case d.queue <- delivery{characterID: characterID, kind: kind, message: message}:
	default:
		d.dropped.Add(1)
		d.log.Warn().
			Str("kind", kind).
			Str("character_id", characterID).
			Msg("event queue full, dropping event")
	}
}

func (d *dispatcher) RecordConfinementChange(ctx context.Context, input *RecordConfinementChangeInput) int64 {
	if input == nil {
		return 0
	}

	count, err := d.counters.Add(ctx, input.Type, input.Delta)
	if err != nil {
		d.log.Warn().
			Err(err).
			Str("type", string(input.Type)).
			Int64("delta", input.Delta).
			Msg("failed to adjust confinement counter")
		return 0
	}

	d.PublishAggregate(ctx, &PublishAggregateInput{
		Topic: models.AggregateTopicConfinementCount,
		Payload: &models.ConfinementCountPayload{
			Type:  input.Type,
			Count: count,
		},
	})

	return count
}

func (d *dispatcher) SeedConfinementCounts(ctx context.Context, input *SeedConfinementCountsInput) {
	if input == nil {
		return
	}

	for _, t := range models.ConfinementTypes {
		count := input.Counts[t]
		if err := d.counters.Set(ctx, t, count); err != nil {
			d.log.Warn().Err(err).Str("type", string(t)).Msg("failed to seed confinement counter")
			continue
		}

		d.PublishAggregate(ctx, &PublishAggregateInput{
			Topic: models.AggregateTopicConfinementCount,
			Payload: &models.ConfinementCountPayload{
				Type:  t,
				Count: count,
			},
		})
	}
}

func (d *dispatcher) ConfinementCounts(ctx context.Context) (map[models.ConfinementType]int64, error) {
	out := make(map[models.ConfinementType]int64, len(models.ConfinementTypes))
	for _, t := range models.ConfinementTypes {
		count, err := d.counters.Get(ctx, t)
		if err != nil {
			return nil, err
		}
		out[t] = count
	}
	return out, nil
}

// Dropped is the number of events discarded because the queue was full
func (d *dispatcher) Dropped() int64 {
	return d.dropped.Load()
}
