package catalog

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
)

// service implements the Service interface. It is immutable after New.
type service struct {
	byID    map[string]*models.CrimeDefinition
	ordered []*models.CrimeDefinition
}

// New validates the definitions and builds the catalog
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	crimes := cfg.Crimes
	if len(crimes) == 0 {
		crimes = DefaultCrimes()
	}

	byID := make(map[string]*models.CrimeDefinition, len(crimes))
	ordered := make([]*models.CrimeDefinition, 0, len(crimes))

	for _, crime := range crimes {
		if crime == nil {
			return nil, ErrEmptyCrimeID
		}
		if err := crime.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[crime.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, crime.ID)
		}

		// Callers get copies; the catalog keeps its own
		def := *crime
		byID[def.ID] = &def
		ordered = append(ordered, &def)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RequiredLevel != ordered[j].RequiredLevel {
			return ordered[i].RequiredLevel < ordered[j].RequiredLevel
		}
		return ordered[i].ID < ordered[j].ID
	})

	return &service{
		byID:    byID,
		ordered: ordered,
	}, nil
}

func (s *service) Get(crimeID string) (*models.CrimeDefinition, error) {
	def, ok := s.byID[crimeID]
	if !ok {
		return nil, gameerr.NotFound("crime %s not found", crimeID)
	}

	out := *def
	return &out, nil
}

func (s *service) List() []*models.CrimeDefinition {
	out := make([]*models.CrimeDefinition, len(s.ordered))
	for i, def := range s.ordered {
		copied := *def
		out[i] = &copied
	}
	return out
}
