package messaging

import (
	"context"
	"testing"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{-5, "0s"},
		{45, "45s"},
		{60, "1m 00s"},
		{245, "4m 05s"},
		{3725, "1h 02m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestGetCrimeResultMessage(t *testing.T) {
	svc, err := New(&Config{Seed: 1})
	require.NoError(t, err)
	ctx := context.Background()

	success, err := svc.GetCrimeResultMessage(ctx, &GetCrimeResultMessageInput{
		CharacterName: "Vinnie",
		CrimeName:     "Shoplift",
		Success:       true,
		Reward:        120,
	})
	require.NoError(t, err)
	assert.Equal(t, "Success!", success.Title)
	assert.Contains(t, success.Message, "$120")

	jailed, err := svc.GetCrimeResultMessage(ctx, &GetCrimeResultMessageInput{
		CrimeName:        "Shoplift",
		ConfinementType:  models.ConfinementTypeJail,
		RemainingSeconds: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, "Failed", jailed.Title)
	assert.Contains(t, jailed.Message, "5m 00s")
}

func TestGetErrorMessage_EveryKind(t *testing.T) {
	svc, err := New(nil)
	require.NoError(t, err)

	kinds := []gameerr.Kind{
		gameerr.KindNotFound,
		gameerr.KindLevelTooLow,
		gameerr.KindConfined,
		gameerr.KindOnCooldown,
		gameerr.KindInsufficientEnergy,
		gameerr.KindInsufficientFunds,
		gameerr.KindAlreadyFree,
		gameerr.KindBusy,
		"",
	}

	for _, kind := range kinds {
		out, err := svc.GetErrorMessage(context.Background(), &GetErrorMessageInput{Kind: kind, RemainingSeconds: 30})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Message, "kind %q", kind)
		assert.Equal(t, ToneFunny, out.Tone)
	}
}

func TestGetConfinementStatusMessage(t *testing.T) {
	svc, err := New(&Config{Seed: 3})
	require.NoError(t, err)

	out, err := svc.GetConfinementStatusMessage(context.Background(), &GetConfinementStatusMessageInput{
		Confined:         true,
		Type:             models.ConfinementTypeHospital,
		RemainingSeconds: 90,
		EarlyReleaseCost: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, "You are hospitalized for another 1m 30s. Early release costs $200.", out.Message)
}
