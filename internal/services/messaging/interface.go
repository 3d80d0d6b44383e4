package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetCrimeResultMessage returns the flavor text for a resolved crime
	GetCrimeResultMessage(ctx context.Context, input *GetCrimeResultMessageInput) (*GetCrimeResultMessageOutput, error)

	// GetConfinementStatusMessage describes a character's confinement state
	GetConfinementStatusMessage(ctx context.Context, input *GetConfinementStatusMessageInput) (*GetConfinementStatusMessageOutput, error)

	// GetEarlyReleaseMessage returns a message for a paid release
	GetEarlyReleaseMessage(ctx context.Context, input *GetEarlyReleaseMessageInput) (*GetEarlyReleaseMessageOutput, error)

	// GetAchievementMessage announces an unlocked achievement
	GetAchievementMessage(ctx context.Context, input *GetAchievementMessageInput) (*GetAchievementMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
