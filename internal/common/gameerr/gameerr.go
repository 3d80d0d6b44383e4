// Package gameerr holds the error taxonomy returned by the engine. Every kind
// is an expected, recoverable outcome; callers branch on the kind, not on the
// message.
package gameerr

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies a class of engine error
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindLevelTooLow        Kind = "level_too_low"
	KindConfined           Kind = "confined"
	KindOnCooldown         Kind = "on_cooldown"
	KindInsufficientEnergy Kind = "insufficient_energy"
	KindInsufficientFunds  Kind = "insufficient_funds"
	KindAlreadyFree        Kind = "already_free"
	KindBusy               Kind = "busy"
	KindInvalid            Kind = "invalid"
)

// Error is an engine error. RemainingSeconds is set for Confined and
// OnCooldown so a client can render a countdown without a second query.
type Error struct {
	Kind             Kind
	Message          string
	RemainingSeconds int64
}

func (e *Error) Error() string {
	if e.RemainingSeconds > 0 {
		return fmt.Sprintf("%s: %s (%ds remaining)", e.Kind, e.Message, e.RemainingSeconds)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrLevelTooLow        = &Error{Kind: KindLevelTooLow}
	ErrConfined           = &Error{Kind: KindConfined}
	ErrOnCooldown         = &Error{Kind: KindOnCooldown}
	ErrInsufficientEnergy = &Error{Kind: KindInsufficientEnergy}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds}
	ErrAlreadyFree        = &Error{Kind: KindAlreadyFree}
	ErrBusy               = &Error{Kind: KindBusy}
	ErrInvalid            = &Error{Kind: KindInvalid}
)

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func LevelTooLow(have, need int) *Error {
	return &Error{Kind: KindLevelTooLow, Message: fmt.Sprintf("level %d required, have %d", need, have)}
}

func Confined(what string, remaining time.Duration) *Error {
	return &Error{Kind: KindConfined, Message: "character is " + what, RemainingSeconds: CeilSeconds(remaining)}
}

func OnCooldown(crimeID string, remaining time.Duration) *Error {
	return &Error{Kind: KindOnCooldown, Message: "crime " + crimeID + " is on cooldown", RemainingSeconds: CeilSeconds(remaining)}
}

func InsufficientEnergy(have, need int) *Error {
	return &Error{Kind: KindInsufficientEnergy, Message: fmt.Sprintf("%d energy required, have %d", need, have)}
}

func InsufficientFunds(have, need int64) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: fmt.Sprintf("%d money required, have %d", need, have)}
}

func AlreadyFree() *Error {
	return &Error{Kind: KindAlreadyFree, Message: "character is not confined"}
}

func Busy(characterID string) *Error {
	return &Error{Kind: KindBusy, Message: "character " + characterID + " is busy, retry"}
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err is not an engine error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CeilSeconds rounds d up to whole seconds, never below zero
func CeilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
