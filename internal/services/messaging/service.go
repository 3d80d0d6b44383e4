package messaging

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/models"
)

// service implements the Service interface
type service struct {
	mu sync.Mutex

	// Random number generator for selecting random messages
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return messages[s.rand.Intn(len(messages))]
}

// FormatDuration renders seconds as "4m 05s" or "45s"
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}

	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", seconds)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
	}

	return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
}

// GetCrimeResultMessage returns the flavor text for a resolved crime
func (s *service) GetCrimeResultMessage(ctx context.Context, input *GetCrimeResultMessageInput) (*GetCrimeResultMessageOutput, error) {
	name := input.CharacterName
	if name == "" {
		name = "You"
	}

	if input.Success {
		messages := []string{
			fmt.Sprintf("%s pulled off %s and walked away with $%d.", name, input.CrimeName, input.Reward),
			fmt.Sprintf("Clean getaway! %s pockets $%d from %s.", name, input.Reward, input.CrimeName),
			fmt.Sprintf("Nobody saw a thing. $%d richer after %s.", input.Reward, input.CrimeName),
			fmt.Sprintf("Smooth criminal. %s nets $%d.", input.CrimeName, input.Reward),
		}

		return &GetCrimeResultMessageOutput{
			Title:   "Success!",
			Message: s.pick(messages),
			Tone:    ToneCelebration,
		}, nil
	}

	var messages []string
	switch input.ConfinementType {
	case models.ConfinementTypeJail:
		remaining := FormatDuration(input.RemainingSeconds)
		messages = []string{
			fmt.Sprintf("The cops were waiting. %s is in jail for %s.", name, remaining),
			fmt.Sprintf("Busted! Enjoy the cell for %s.", remaining),
			fmt.Sprintf("Hands where we can see them. %s of jail time coming up.", remaining),
		}
	case models.ConfinementTypeHospital:
		remaining := FormatDuration(input.RemainingSeconds)
		messages = []string{
			fmt.Sprintf("That went badly. %s wakes up in hospital, %s to go.", name, remaining),
			fmt.Sprintf("They fought back. Hospital for %s.", remaining),
			fmt.Sprintf("Ouch. The nurse says %s until discharge.", remaining),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s botched %s but got away empty-handed.", name, input.CrimeName),
			"Nothing to show for it but sore feet.",
			"Close call. No loot this time, but no cuffs either.",
		}
	}

	return &GetCrimeResultMessageOutput{
		Title:   "Failed",
		Message: s.pick(messages),
		Tone:    ToneSarcastic,
	}, nil
}

// GetConfinementStatusMessage describes a character's confinement state
func (s *service) GetConfinementStatusMessage(ctx context.Context, input *GetConfinementStatusMessageInput) (*GetConfinementStatusMessageOutput, error) {
	if !input.Confined {
		messages := []string{
			"You're a free agent. Go cause some trouble.",
			"No bars, no bandages. The streets are yours.",
			"Free as a bird.",
		}
		return &GetConfinementStatusMessageOutput{Message: s.pick(messages)}, nil
	}

	return &GetConfinementStatusMessageOutput{
		Message: fmt.Sprintf("You are %s for another %s. Early release costs $%d.",
			input.Type.Describe(),
			FormatDuration(input.RemainingSeconds),
			input.EarlyReleaseCost,
		),
	}, nil
}

// GetEarlyReleaseMessage returns a message for a paid release
func (s *service) GetEarlyReleaseMessage(ctx context.Context, input *GetEarlyReleaseMessageInput) (*GetEarlyReleaseMessageOutput, error) {
	var messages []string
	switch input.Type {
	case models.ConfinementTypeHospital:
		messages = []string{
			fmt.Sprintf("The doctor found a miracle cure for $%d.", input.Cost),
			fmt.Sprintf("Private care isn't cheap. $%d later you're back on your feet.", input.Cost),
		}
	default:
		messages = []string{
			fmt.Sprintf("Bail posted: $%d. Try not to come back.", input.Cost),
			fmt.Sprintf("A good lawyer and $%d. You're out.", input.Cost),
			fmt.Sprintf("The guard counts the $%d and looks the other way.", input.Cost),
		}
	}

	return &GetEarlyReleaseMessageOutput{
		Title:   "Released",
		Message: fmt.Sprintf("%s You have $%d left.", s.pick(messages), input.NewMoney),
	}, nil
}

// GetAchievementMessage announces an unlocked achievement
func (s *service) GetAchievementMessage(ctx context.Context, input *GetAchievementMessageInput) (*GetAchievementMessageOutput, error) {
	messages := []string{
		fmt.Sprintf("🏆 Achievement unlocked: %s (+%d XP)", input.Name, input.XPReward),
		fmt.Sprintf("🏆 %s! That's +%d XP.", input.Name, input.XPReward),
	}

	return &GetAchievementMessageOutput{Message: s.pick(messages)}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	remaining := FormatDuration(input.RemainingSeconds)

	var messages []string
	switch input.Kind {
	case gameerr.KindNotFound:
		messages = []string{
			"Never heard of it. Check the name and try again.",
			"That doesn't exist. Not even on the black market.",
		}
	case gameerr.KindLevelTooLow:
		messages = []string{
			"You're not ready for that job yet. Work your way up.",
			"Big plans for a small-timer. Level up first.",
		}
	case gameerr.KindConfined:
		messages = []string{
			fmt.Sprintf("You can't do that from in here. %s to go.", remaining),
			fmt.Sprintf("Sit tight. You're out in %s.", remaining),
		}
	case gameerr.KindOnCooldown:
		messages = []string{
			fmt.Sprintf("Lay low for %s. The heat is still on.", remaining),
			fmt.Sprintf("Too soon. Try again in %s.", remaining),
		}
	case gameerr.KindInsufficientEnergy:
		messages = []string{
			"You're running on fumes. Rest up first.",
			"Too tired to commit crimes. Even villains need naps.",
		}
	case gameerr.KindInsufficientFunds:
		messages = []string{
			"You can't afford that. Crime pays, just not enough yet.",
			"Your wallet says no.",
		}
	case gameerr.KindAlreadyFree:
		messages = []string{
			"You're already free. Save your money.",
			"Nobody's holding you. Walk out the door.",
		}
	case gameerr.KindInvalid:
		messages = []string{
			"That request doesn't make sense. Check your input.",
		}
	case gameerr.KindBusy:
		messages = []string{
			"Hold on, you're doing something else. Try again in a moment.",
			"One thing at a time. Try again.",
		}
	default:
		messages = []string{
			"Something went wrong. Try again later.",
			"The underworld is having technical difficulties.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}
