package redispub

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultChannelPrefix namespaces every channel
	DefaultChannelPrefix = "lockup"

	characterSegment = ":character:"
	broadcastSegment = ":broadcast"
)

// PubSubError is a construction error
type PubSubError string

func (e PubSubError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      = PubSubError("redispub: config is nil")
	ErrNilRedisClient = PubSubError("redispub: redis client is required")
	ErrNilLocal       = PubSubError("redispub: local transport is required")
)

// Local is the in-process transport messages are relayed to
type Local interface {
	SendToCharacter(ctx context.Context, characterID string, message []byte) error
	Broadcast(ctx context.Context, message []byte) error
}

// Config holds the publisher settings
type Config struct {
	RedisClient   redis.UniversalClient
	ChannelPrefix string
}

// Publisher is a transport that publishes every message to Redis so all
// server instances can deliver it to their own sockets.
type Publisher struct {
	client redis.UniversalClient
	prefix string
}

// New creates a publisher
func New(cfg *Config) (*Publisher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	return &Publisher{
		client: cfg.RedisClient,
		prefix: prefixOrDefault(cfg.ChannelPrefix),
	}, nil
}

// SendToCharacter publishes to the character's channel
func (p *Publisher) SendToCharacter(ctx context.Context, characterID string, message []byte) error {
	if err := p.client.Publish(ctx, CharacterChannel(p.prefix, characterID), message).Err(); err != nil {
		return fmt.Errorf("failed to publish to character %s: %w", characterID, err)
	}

	return nil
}

// Broadcast publishes to the broadcast channel
func (p *Publisher) Broadcast(ctx context.Context, message []byte) error {
	if err := p.client.Publish(ctx, BroadcastChannel(p.prefix), message).Err(); err != nil {
		return fmt.Errorf("failed to publish broadcast: %w", err)
	}

	return nil
}

// CharacterChannel returns the channel name for one character
func CharacterChannel(prefix, characterID string) string {
	return prefix + characterSegment + characterID
}

// BroadcastChannel returns the channel every instance listens on
func BroadcastChannel(prefix string) string {
	return prefix + broadcastSegment
}

// RelayConfig holds the subscriber settings
type RelayConfig struct {
	RedisClient   redis.UniversalClient
	ChannelPrefix string
	Local         Local
	Logger        *zerolog.Logger
}

// Relay subscribes to the published channels and hands each message to the
// local transport.
type Relay struct {
	client redis.UniversalClient
	prefix string
	local  Local
	log    zerolog.Logger
}

// NewRelay creates a relay
func NewRelay(cfg *RelayConfig) (*Relay, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	if cfg.Local == nil {
		return nil, ErrNilLocal
	}

	return &Relay{
		client: cfg.RedisClient,
		prefix: prefixOrDefault(cfg.ChannelPrefix),
		local:  cfg.Local,
		log:    logger.OrNop(cfg.Logger),
	}, nil
}

// Run relays messages until ctx is done. The subscription is confirmed
// before ready is closed; ready may be nil.
func (r *Relay) Run(ctx context.Context, ready chan<- struct{}) error {
	pubsub := r.client.PSubscribe(ctx,
		r.prefix+characterSegment+"*",
		BroadcastChannel(r.prefix),
	)
	defer pubsub.Close()

	// Receive blocks until the subscription is confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	if ready != nil {
		close(ready)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.relay(ctx, msg)
		}
	}
}

func (r *Relay) relay(ctx context.Context, msg *redis.Message) {
	payload := []byte(msg.Payload)

	var err error
	if msg.Channel == BroadcastChannel(r.prefix) {
		err = r.local.Broadcast(ctx, payload)
	} else {
		characterID := strings.TrimPrefix(msg.Channel, r.prefix+characterSegment)
		err = r.local.SendToCharacter(ctx, characterID, payload)
	}

	if err != nil {
		r.log.Warn().Err(err).Str("channel", msg.Channel).Msg("failed to relay message")
	}
}

func prefixOrDefault(prefix string) string {
	if prefix == "" {
		return DefaultChannelPrefix
	}
	return prefix
}
