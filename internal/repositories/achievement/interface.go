package achievement

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lockup/internal/repositories/achievement Repository

import (
	"context"
)

// Repository persists achievement unlocks. An unlock is written at most once
// per (character, key); a second insert for the same pair is a no-op.
type Repository interface {
	// InsertUnlock records an unlock unless the pair is already present
	InsertUnlock(ctx context.Context, input *InsertUnlockInput) (*InsertUnlockOutput, error)

	// ListUnlocks returns every unlock recorded for a character, oldest first
	ListUnlocks(ctx context.Context, input *ListUnlocksInput) (*ListUnlocksOutput, error)
}
