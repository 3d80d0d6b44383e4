package crime

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lockup/internal/services/crime Service

import "context"

// Service resolves crime attempts
type Service interface {
	// AttemptCrime checks the preconditions and resolves the crime as one
	// ledger mutation
	AttemptCrime(ctx context.Context, input *AttemptCrimeInput) (*AttemptCrimeOutput, error)

	// ListAvailability reports, per catalog crime, whether the character
	// could attempt it right now
	ListAvailability(ctx context.Context, input *ListAvailabilityInput) (*ListAvailabilityOutput, error)
}
