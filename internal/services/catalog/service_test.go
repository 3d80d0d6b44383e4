package catalog

import (
	"math"
	"testing"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultCrimesAreValid(t *testing.T) {
	svc, err := New(&Config{})
	require.NoError(t, err)

	crimes := svc.List()
	require.Len(t, crimes, len(DefaultCrimes()))

	for i := 1; i < len(crimes); i++ {
		assert.LessOrEqual(t, crimes[i-1].RequiredLevel, crimes[i].RequiredLevel)
	}
}

func TestNew_Rejects(t *testing.T) {
	valid := func(id string) *models.CrimeDefinition {
		return &models.CrimeDefinition{ID: id, SuccessChanceBase: 50, MinReward: 1, MaxReward: 2}
	}

	tests := []struct {
		name   string
		crimes []*models.CrimeDefinition
		want   error
	}{
		{
			name:   "duplicate id",
			crimes: []*models.CrimeDefinition{valid("a"), valid("a")},
			want:   ErrDuplicateID,
		},
		{
			name:   "nil entry",
			crimes: []*models.CrimeDefinition{nil},
			want:   ErrEmptyCrimeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&Config{Crimes: tt.crimes})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := New(&Config{Crimes: []*models.CrimeDefinition{{ID: "bad", MinReward: 5, MaxReward: 1}}})
	assert.Error(t, err)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNew_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  models.CrimeDefinition
	}{
		{
			name: "min above max",
			def:  models.CrimeDefinition{ID: "bad", MinReward: 5, MaxReward: 1},
		},
		{
			name: "max reward at int64 limit",
			def:  models.CrimeDefinition{ID: "vault", SuccessChanceBase: 50, MaxReward: math.MaxInt64},
		},
		{
			name: "max reward above cap",
			def:  models.CrimeDefinition{ID: "vault", SuccessChanceBase: 50, MaxReward: models.MaxCrimeReward + 1},
		},
		{
			name: "cooldown too long for a duration",
			def:  models.CrimeDefinition{ID: "heist", SuccessChanceBase: 50, CooldownSeconds: math.MaxInt64},
		},
		{
			name: "confinement too long for a duration",
			def: models.CrimeDefinition{
				ID:                                "heist",
				SuccessChanceBase:                 50,
				FailureConfinementType:            models.ConfinementTypeJail,
				FailureConfinementDurationSeconds: math.MaxInt64,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := tt.def
			_, err := New(&Config{Crimes: []*models.CrimeDefinition{&def}})
			assert.Error(t, err)
		})
	}

	capped := &models.CrimeDefinition{ID: "vault", SuccessChanceBase: 50, MaxReward: models.MaxCrimeReward}
	_, err := New(&Config{Crimes: []*models.CrimeDefinition{capped}})
	assert.NoError(t, err)
}

func TestGet(t *testing.T) {
	svc, err := New(&Config{})
	require.NoError(t, err)

	def, err := svc.Get("pickpocket")
	require.NoError(t, err)
	assert.Equal(t, "pickpocket", def.ID)

	// Returned definitions are copies
	def.EnergyCost = 999
	again, err := svc.Get("pickpocket")
	require.NoError(t, err)
	assert.NotEqual(t, 999, again.EnergyCost)

	_, err = svc.Get("arson")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}
