package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/rs/zerolog"
)

// HandlerError is a construction error
type HandlerError string

func (e HandlerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       = HandlerError("api: config is nil")
	ErrNilCrime        = HandlerError("api: crime service is required")
	ErrNilConfinement  = HandlerError("api: confinement service is required")
	ErrNilAchievements = HandlerError("api: achievement service is required")
	ErrNilCatalog      = HandlerError("api: catalog is required")
)

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error            string `json:"error"`
	Message          string `json:"message,omitempty"`
	RemainingSeconds int64  `json:"remaining_seconds,omitempty"`
}

var statusByKind = map[gameerr.Kind]int{
	gameerr.KindNotFound:           http.StatusNotFound,
	gameerr.KindLevelTooLow:        http.StatusForbidden,
	gameerr.KindConfined:           http.StatusConflict,
	gameerr.KindOnCooldown:         http.StatusTooManyRequests,
	gameerr.KindInsufficientEnergy: http.StatusConflict,
	gameerr.KindInsufficientFunds:  http.StatusPaymentRequired,
	gameerr.KindAlreadyFree:        http.StatusConflict,
	gameerr.KindBusy:               http.StatusServiceUnavailable,
	gameerr.KindInvalid:            http.StatusBadRequest,
}

// StatusFor returns the HTTP status for an engine error kind
func StatusFor(kind gameerr.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders engine errors with their kind and hides everything else
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var gerr *gameerr.Error
	if !errors.As(err, &gerr) {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, &errorResponse{Error: "internal"})
		return
	}

	status := StatusFor(gerr.Kind)
	switch gerr.Kind {
	case gameerr.KindBusy:
		w.Header().Set("Retry-After", "1")
	case gameerr.KindConfined, gameerr.KindOnCooldown:
		if gerr.RemainingSeconds > 0 {
			w.Header().Set("Retry-After", strconv.FormatInt(gerr.RemainingSeconds, 10))
		}
	}

	writeJSON(w, status, &errorResponse{
		Error:            string(gerr.Kind),
		Message:          gerr.Message,
		RemainingSeconds: gerr.RemainingSeconds,
	})
}
