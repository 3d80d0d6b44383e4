package api

import (
	"encoding/json"
	"net/http"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 16

// Config holds the services exposed over HTTP
type Config struct {
	Crime        crime.Service
	Confinement  confinement.Service
	Achievements achievement.Service
	Catalog      catalog.Service

	// WebSocket serves GET /ws when set
	WebSocket http.Handler

	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string

	Logger *zerolog.Logger
}

// Handler serves the game's HTTP surface
type Handler struct {
	crime          crime.Service
	confinement    confinement.Service
	achievements   achievement.Service
	catalog        catalog.Service
	webSocket      http.Handler
	allowedOrigins []string
	log            zerolog.Logger
}

// New creates a handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Crime == nil {
		return nil, ErrNilCrime
	}

	if cfg.Confinement == nil {
		return nil, ErrNilConfinement
	}

	if cfg.Achievements == nil {
		return nil, ErrNilAchievements
	}

	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	return &Handler{
		crime:          cfg.Crime,
		confinement:    cfg.Confinement,
		achievements:   cfg.Achievements,
		catalog:        cfg.Catalog,
		webSocket:      cfg.WebSocket,
		allowedOrigins: cfg.AllowedOrigins,
		log:            logger.OrNop(cfg.Logger),
	}, nil
}

// Routes returns the router wrapped in CORS and request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /crimes", h.listCrimes)
	mux.HandleFunc("GET /characters/{id}/crimes", h.listAvailability)
	mux.HandleFunc("POST /characters/{id}/crimes/{crimeID}/attempt", h.attemptCrime)
	mux.HandleFunc("GET /characters/{id}/confinement", h.getConfinement)
	mux.HandleFunc("POST /characters/{id}/confinement", h.confine)
	mux.HandleFunc("POST /characters/{id}/confinement/release", h.payEarlyRelease)
	mux.HandleFunc("GET /characters/{id}/achievements", h.listAchievements)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if h.webSocket != nil {
		mux.Handle("GET /ws", h.webSocket)
	}

	origins := h.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	})

	return RequestID(h.log)(c.Handler(mux))
}

type crimesResponse struct {
	Crimes []*models.CrimeDefinition `json:"crimes"`
}

func (h *Handler) listCrimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &crimesResponse{Crimes: h.catalog.List()})
}

type availabilityResponse struct {
	Crimes []*crime.Availability `json:"crimes"`
}

func (h *Handler) listAvailability(w http.ResponseWriter, r *http.Request) {
	out, err := h.crime.ListAvailability(r.Context(), &crime.ListAvailabilityInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &availabilityResponse{Crimes: out.Crimes})
}

type attemptResponse struct {
	Outcome      crime.Outcome       `json:"outcome"`
	Roll         int                 `json:"roll"`
	Reward       int64               `json:"reward"`
	EnergySpent  int                 `json:"energy_spent"`
	XPGained     int                 `json:"xp_gained"`
	Confinement  *models.Confinement `json:"confinement,omitempty"`
	Character    *models.Character   `json:"character"`
	Achievements []string            `json:"achievements,omitempty"`
}

func (h *Handler) attemptCrime(w http.ResponseWriter, r *http.Request) {
	out, err := h.crime.AttemptCrime(r.Context(), &crime.AttemptCrimeInput{
		CharacterID: r.PathValue("id"),
		CrimeID:     r.PathValue("crimeID"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &attemptResponse{
		Outcome:      out.Outcome,
		Roll:         out.Roll,
		Reward:       out.Reward,
		EnergySpent:  out.EnergySpent,
		XPGained:     out.XPGained,
		Confinement:  out.Confinement,
		Character:    out.Character,
		Achievements: out.Achievements,
	})
}

func (h *Handler) getConfinement(w http.ResponseWriter, r *http.Request) {
	out, err := h.confinement.GetStatus(r.Context(), &confinement.GetStatusInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Status)
}

type confineRequest struct {
	Type            models.ConfinementType `json:"type"`
	DurationSeconds int64                  `json:"duration_seconds"`
	Reason          string                 `json:"reason"`
}

type confineResponse struct {
	Confinement *models.Confinement `json:"confinement"`
	Character   *models.Character   `json:"character"`
}

func (h *Handler) confine(w http.ResponseWriter, r *http.Request) {
	var req confineRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, gameerr.Invalid("malformed body: %v", err))
		return
	}

	out, err := h.confinement.Confine(r.Context(), &confinement.ConfineInput{
		CharacterID:     r.PathValue("id"),
		Type:            req.Type,
		DurationSeconds: req.DurationSeconds,
		Reason:          req.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &confineResponse{
		Confinement: out.Confinement,
		Character:   out.Character,
	})
}

type releaseResponse struct {
	Cost      int64               `json:"cost"`
	NewMoney  int64               `json:"new_money"`
	Released  *models.Confinement `json:"released"`
	Character *models.Character   `json:"character"`
}

func (h *Handler) payEarlyRelease(w http.ResponseWriter, r *http.Request) {
	out, err := h.confinement.PayEarlyRelease(r.Context(), &confinement.PayEarlyReleaseInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &releaseResponse{
		Cost:      out.Cost,
		NewMoney:  out.NewMoney,
		Released:  out.Released,
		Character: out.Character,
	})
}

type achievementsResponse struct {
	Achievements []*achievement.AchievementStatus `json:"achievements"`
}

func (h *Handler) listAchievements(w http.ResponseWriter, r *http.Request) {
	out, err := h.achievements.ListAchievements(r.Context(), &achievement.ListAchievementsInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &achievementsResponse{Achievements: out.Achievements})
}
