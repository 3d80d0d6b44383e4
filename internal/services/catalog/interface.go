package catalog

import "github.com/KirkDiggler/lockup/internal/models"

// Service exposes the read-only crime catalog
type Service interface {
	// Get returns the definition for a crime ID or a NotFound error
	Get(crimeID string) (*models.CrimeDefinition, error)

	// List returns every crime ordered by required level then ID
	List() []*models.CrimeDefinition
}
