package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	"github.com/KirkDiggler/lockup/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorGreen  = 0x00ff00
	colorRed    = 0xff0000
	colorOrange = 0xff9900
	colorGold   = 0xffd700
	colorGrey   = 0x808080
)

// Button IDs. Attempt buttons carry the crime ID after the prefix.
const (
	ButtonAttemptPrefix = "crime_attempt:"
	ButtonBail          = "crime_bail"
	ButtonStatus        = "crime_status"
)

func ephemeral(embed *discordgo.MessageEmbed, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}

	if len(components) > 0 {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: components},
		}
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// renderAttempt renders a resolved crime with a follow-up button: try again
// after a clean outcome, pay bail after being put away
func renderAttempt(crimeID string, output *crime.AttemptCrimeOutput, text *messaging.GetCrimeResultMessageOutput, unlocked []string) *discordgo.InteractionResponse {
	color := colorGreen
	if output.Outcome == crime.OutcomeFailure {
		color = colorRed
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Roll", Value: fmt.Sprintf("%d", output.Roll), Inline: true},
		{Name: "Energy", Value: fmt.Sprintf("-%d", output.EnergySpent), Inline: true},
	}
	if output.Outcome == crime.OutcomeSuccess {
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Reward", Value: fmt.Sprintf("$%d", output.Reward), Inline: true},
			&discordgo.MessageEmbedField{Name: "XP", Value: fmt.Sprintf("+%d", output.XPGained), Inline: true},
		)
	}
	if output.Character != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Wallet",
			Value: fmt.Sprintf("$%d · %d/%d energy", output.Character.Money, output.Character.Energy, output.Character.MaxEnergy),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       text.Title,
		Description: text.Message,
		Color:       color,
		Fields:      fields,
	}
	if len(unlocked) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: strings.Join(unlocked, "\n")}
	}

	var button discordgo.Button
	if output.Confinement != nil {
		button = discordgo.Button{
			Label:    "Pay to get out",
			Style:    discordgo.DangerButton,
			CustomID: ButtonBail,
			Emoji:    &discordgo.ComponentEmoji{Name: "💸"},
		}
	} else {
		button = discordgo.Button{
			Label:    "Try again",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonAttemptPrefix + crimeID,
			Emoji:    &discordgo.ComponentEmoji{Name: "🎲"},
		}
	}

	return ephemeral(embed, button)
}

// renderStatus renders a confinement status with a bail button while confined
func renderStatus(status *confinement.Status, text *messaging.GetConfinementStatusMessageOutput) *discordgo.InteractionResponse {
	if status.State != confinement.StateConfined {
		return ephemeral(&discordgo.MessageEmbed{
			Title:       "Free",
			Description: text.Message,
			Color:       colorGreen,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       capitalize(status.Type.Describe()),
		Description: text.Message,
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Remaining", Value: messaging.FormatDuration(status.RemainingSeconds), Inline: true},
			{Name: "Early release", Value: fmt.Sprintf("$%d", status.EarlyReleaseCost), Inline: true},
		},
	}

	return ephemeral(embed, discordgo.Button{
		Label:    "Pay to get out",
		Style:    discordgo.DangerButton,
		CustomID: ButtonBail,
		Emoji:    &discordgo.ComponentEmoji{Name: "💸"},
	})
}

// renderRelease renders a paid early release
func renderRelease(text *messaging.GetEarlyReleaseMessageOutput) *discordgo.InteractionResponse {
	return ephemeral(&discordgo.MessageEmbed{
		Title:       text.Title,
		Description: text.Message,
		Color:       colorGreen,
	}, discordgo.Button{
		Label:    "Status",
		Style:    discordgo.SecondaryButton,
		CustomID: ButtonStatus,
	})
}

// renderAchievements lists every achievement, unlocked ones first
func renderAchievements(statuses []*achievement.AchievementStatus) *discordgo.InteractionResponse {
	var unlocked, locked []string
	for _, a := range statuses {
		line := fmt.Sprintf("**%s** (%d XP): %s", a.Name, a.XPReward, a.Description)
		if a.Unlocked {
			unlocked = append(unlocked, "🏆 "+line)
		} else {
			locked = append(locked, "🔒 "+line)
		}
	}

	description := strings.Join(append(unlocked, locked...), "\n")
	if description == "" {
		description = "No achievements are configured."
	}

	color := colorGrey
	if len(unlocked) > 0 {
		color = colorGold
	}

	return ephemeral(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Achievements %d/%d", len(unlocked), len(statuses)),
		Description: description,
		Color:       color,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
