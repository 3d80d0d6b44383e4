package ledger

import "context"

// Service is the only write path for character state. Mutations of one
// character are serialized and applied all-or-nothing.
type Service interface {
	// Load returns the current committed snapshot of a character
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// ApplyMutation runs Mutate against a copy of the character under the
	// character's lock and commits the copy only if Mutate returns nil
	ApplyMutation(ctx context.Context, input *ApplyMutationInput) (*ApplyMutationOutput, error)
}
