package confinement

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lockup/internal/services/confinement Service

import "context"

// Service is the confinement state machine: Free, Confined, Free
type Service interface {
	// GetStatus reports the state, releasing an expired record on the way
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// Confine puts a free character into confinement, e.g. after a lost fight
	Confine(ctx context.Context, input *ConfineInput) (*ConfineOutput, error)

	// PayEarlyRelease debits the release price and frees the character
	PayEarlyRelease(ctx context.Context, input *PayEarlyReleaseInput) (*PayEarlyReleaseOutput, error)

	// ReleaseExpired clears an expired record, used by the sweep
	ReleaseExpired(ctx context.Context, input *ReleaseExpiredInput) (*ReleaseExpiredOutput, error)

	// AnnounceTransition publishes enter/leave events and adjusts the
	// aggregate counters for a committed transition
	AnnounceTransition(ctx context.Context, input *AnnounceTransitionInput)
}
