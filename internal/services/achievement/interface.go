package achievement

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lockup/internal/services/achievement Service

import "context"

// Service evaluates achievement rules against characters
type Service interface {
	// Evaluate unlocks every rule the character now satisfies and has not
	// unlocked before. Running it again without a state change unlocks nothing.
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error)

	// ListAchievements returns every rule with the character's unlock state
	ListAchievements(ctx context.Context, input *ListAchievementsInput) (*ListAchievementsOutput, error)
}
