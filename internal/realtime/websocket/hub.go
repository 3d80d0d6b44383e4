package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512

	// DefaultSendBuffer is the per-client outbound queue length
	DefaultSendBuffer = 64
)

// HubError is a construction error
type HubError string

func (e HubError) Error() string {
	return string(e)
}

// ErrNilConfig is returned when New gets no config
const ErrNilConfig = HubError("websocket: config is nil")

// ErrMissingCharacterID is returned when a socket asks for no character
const ErrMissingCharacterID = HubError("websocket: character_id is required")

// Config holds hub settings
type Config struct {
	// SendBuffer is the outbound queue length per client
	SendBuffer int

	// CheckOrigin overrides the upgrader's origin check
	CheckOrigin func(r *http.Request) bool

	Logger *zerolog.Logger
}

// Hub tracks connected sockets by character and fans messages out to them.
// Sends never block: a client whose queue is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	byChar  map[string]map[*client]struct{}

	upgrader   websocket.Upgrader
	sendBuffer int
	log        zerolog.Logger
}

// New creates a hub
func New(cfg *Config) (*Hub, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}

	return &Hub{
		clients: make(map[*client]struct{}),
		byChar:  make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sendBuffer: sendBuffer,
		log:        logger.OrNop(cfg.Logger),
	}, nil
}

// ServeWS upgrades the request and subscribes the socket to the character
// named by the character_id query parameter and to broadcasts.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	characterID := r.URL.Query().Get("character_id")
	if characterID == "" {
		http.Error(w, ErrMissingCharacterID.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.log.Warn().Err(err).Str("character_id", characterID).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		hub:         h,
		conn:        conn,
		characterID: characterID,
		send:        make(chan []byte, h.sendBuffer),
	}
	h.register(c)

	go c.writePump()
	c.readPump()
}

// SendToCharacter queues message for every socket of one character
func (h *Hub) SendToCharacter(ctx context.Context, characterID string, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.byChar[characterID] {
		h.offerLocked(c, message)
	}

	return nil
}

// Broadcast queues message for every connected socket
func (h *Hub) Broadcast(ctx context.Context, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.offerLocked(c, message)
	}

	return nil
}

// ClientCount returns the number of sockets open for a character, or all
// sockets when characterID is empty
func (h *Hub) ClientCount(characterID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if characterID == "" {
		return len(h.clients)
	}

	return len(h.byChar[characterID])
}

// Close disconnects every socket
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	set, ok := h.byChar[c.characterID]
	if !ok {
		set = make(map[*client]struct{})
		h.byChar[c.characterID] = set
	}
	set[c] = struct{}{}

	h.log.Debug().Str("character_id", c.characterID).Msg("websocket client connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
}

func (h *Hub) offerLocked(c *client, message []byte) {
	select {
	case c.send <- message:
	default:
		h.log.Warn().Str("character_id", c.characterID).Msg("websocket client too slow, disconnecting")
		h.removeLocked(c)
	}
}

// removeLocked is idempotent; closing send tells writePump to hang up
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	delete(h.clients, c)
	if set, ok := h.byChar[c.characterID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byChar, c.characterID)
		}
	}
	close(c.send)

	h.log.Debug().Str("character_id", c.characterID).Msg("websocket client disconnected")
}
