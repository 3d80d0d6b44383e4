package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/lockup/internal/common/gameerr"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	"github.com/KirkDiggler/lockup/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Discord caps option choices at 25
const maxChoices = 25

// CrimeCommandConfig holds the services behind /crime
type CrimeCommandConfig struct {
	Crime        crime.Service
	Confinement  confinement.Service
	Achievements achievement.Service
	Catalog      catalog.Service
	Messaging    messaging.Service
	Logger       zerolog.Logger
}

// CrimeCommand handles the /crime command. A Discord user's ID is their
// character ID.
type CrimeCommand struct {
	BaseCommand
	crime        crime.Service
	confinement  confinement.Service
	achievements achievement.Service
	catalog      catalog.Service
	messaging    messaging.Service
	log          zerolog.Logger
}

// NewCrimeCommand creates a new crime command handler
func NewCrimeCommand(cfg *CrimeCommandConfig) *CrimeCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, def := range cfg.Catalog.List() {
		if len(choices) == maxChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  def.Name,
			Value: def.ID,
		})
	}

	return &CrimeCommand{
		BaseCommand: BaseCommand{
			Name:        "crime",
			Description: "Commit crimes, do the time",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "attempt",
					Description: "Attempt a crime",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "crime",
							Description: "Which crime",
							Required:    true,
							Choices:     choices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Check whether you are jailed or hospitalized",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bail",
					Description: "Pay to get out early",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "achievements",
					Description: "List your achievements",
				},
			},
		},
		crime:        cfg.Crime,
		confinement:  cfg.Confinement,
		achievements: cfg.Achievements,
		catalog:      cfg.Catalog,
		messaging:    cfg.Messaging,
		log:          cfg.Logger,
	}
}

// Handle processes a Discord interaction for the crime command
func (c *CrimeCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	userID, username := interactionUser(i)
	sub := data.Options[0]

	crimeID := ""
	for _, opt := range sub.Options {
		if opt.Name == "crime" {
			crimeID = opt.StringValue()
		}
	}

	resp := c.respond(context.Background(), sub.Name, userID, username, crimeID)
	return s.InteractionRespond(i.Interaction, resp)
}

// HandlesComponent reports whether customID is one of this command's buttons
func (c *CrimeCommand) HandlesComponent(customID string) bool {
	return customID == ButtonBail ||
		customID == ButtonStatus ||
		strings.HasPrefix(customID, ButtonAttemptPrefix)
}

// HandleComponent processes a button click
func (c *CrimeCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID, username := interactionUser(i)

	customID := i.MessageComponentData().CustomID
	sub, crimeID := componentAction(customID)

	resp := c.respond(context.Background(), sub, userID, username, crimeID)
	return s.InteractionRespond(i.Interaction, resp)
}

// componentAction maps a button ID to the subcommand it repeats
func componentAction(customID string) (string, string) {
	switch {
	case customID == ButtonBail:
		return "bail", ""
	case customID == ButtonStatus:
		return "status", ""
	case strings.HasPrefix(customID, ButtonAttemptPrefix):
		return "attempt", strings.TrimPrefix(customID, ButtonAttemptPrefix)
	default:
		return "", ""
	}
}

// respond runs a subcommand and builds the reply
func (c *CrimeCommand) respond(ctx context.Context, sub, userID, username, crimeID string) *discordgo.InteractionResponse {
	if userID == "" {
		return errorResponse("Could not tell who you are.")
	}

	var (
		resp *discordgo.InteractionResponse
		err  error
	)

	switch sub {
	case "attempt":
		resp, err = c.attempt(ctx, userID, username, crimeID)
	case "status":
		resp, err = c.status(ctx, userID)
	case "bail":
		resp, err = c.bail(ctx, userID)
	case "achievements":
		resp, err = c.listAchievements(ctx, userID)
	default:
		err = gameerr.Invalid("unknown subcommand %q", sub)
	}

	if err != nil {
		return c.errorFor(ctx, userID, err)
	}

	return resp
}

func (c *CrimeCommand) attempt(ctx context.Context, userID, username, crimeID string) (*discordgo.InteractionResponse, error) {
	def, err := c.catalog.Get(crimeID)
	if err != nil {
		return nil, err
	}

	out, err := c.crime.AttemptCrime(ctx, &crime.AttemptCrimeInput{
		CharacterID: userID,
		CrimeID:     crimeID,
	})
	if err != nil {
		return nil, err
	}

	input := &messaging.GetCrimeResultMessageInput{
		CharacterName: username,
		CrimeName:     def.Name,
		Success:       out.Outcome == crime.OutcomeSuccess,
		Reward:        out.Reward,
	}
	if out.Confinement != nil {
		input.ConfinementType = out.Confinement.Type
		input.RemainingSeconds = out.Confinement.OriginalDurationSeconds
	}

	text, err := c.messaging.GetCrimeResultMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	unlocked, err := c.unlockLines(ctx, userID, out.Achievements)
	if err != nil {
		return nil, err
	}

	return renderAttempt(crimeID, out, text, unlocked), nil
}

// unlockLines renders one announcement per unlocked key
func (c *CrimeCommand) unlockLines(ctx context.Context, userID string, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	list, err := c.achievements.ListAchievements(ctx, &achievement.ListAchievementsInput{CharacterID: userID})
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*achievement.AchievementStatus, len(list.Achievements))
	for _, a := range list.Achievements {
		byKey[a.Key] = a
	}

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		a, ok := byKey[key]
		if !ok {
			continue
		}
		msg, err := c.messaging.GetAchievementMessage(ctx, &messaging.GetAchievementMessageInput{
			Name:     a.Name,
			XPReward: a.XPReward,
		})
		if err != nil {
			return nil, err
		}
		lines = append(lines, msg.Message)
	}

	return lines, nil
}

func (c *CrimeCommand) status(ctx context.Context, userID string) (*discordgo.InteractionResponse, error) {
	out, err := c.confinement.GetStatus(ctx, &confinement.GetStatusInput{CharacterID: userID})
	if err != nil {
		return nil, err
	}

	text, err := c.messaging.GetConfinementStatusMessage(ctx, &messaging.GetConfinementStatusMessageInput{
		Confined:         out.Status.State == confinement.StateConfined,
		Type:             out.Status.Type,
		RemainingSeconds: out.Status.RemainingSeconds,
		EarlyReleaseCost: out.Status.EarlyReleaseCost,
	})
	if err != nil {
		return nil, err
	}

	return renderStatus(out.Status, text), nil
}

func (c *CrimeCommand) bail(ctx context.Context, userID string) (*discordgo.InteractionResponse, error) {
	out, err := c.confinement.PayEarlyRelease(ctx, &confinement.PayEarlyReleaseInput{CharacterID: userID})
	if err != nil {
		return nil, err
	}

	input := &messaging.GetEarlyReleaseMessageInput{
		Cost:     out.Cost,
		NewMoney: out.NewMoney,
	}
	if out.Released != nil {
		input.Type = out.Released.Type
	}

	text, err := c.messaging.GetEarlyReleaseMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	return renderRelease(text), nil
}

func (c *CrimeCommand) listAchievements(ctx context.Context, userID string) (*discordgo.InteractionResponse, error) {
	out, err := c.achievements.ListAchievements(ctx, &achievement.ListAchievementsInput{CharacterID: userID})
	if err != nil {
		return nil, err
	}

	return renderAchievements(out.Achievements), nil
}

// errorFor turns err into flavor text; unexpected errors are logged and
// shown generically
func (c *CrimeCommand) errorFor(ctx context.Context, userID string, err error) *discordgo.InteractionResponse {
	kind := gameerr.KindOf(err)
	if kind == "" {
		c.log.Error().Err(err).Str("user_id", userID).Msg("crime command failed")
	}

	var remaining int64
	var gerr *gameerr.Error
	if errors.As(err, &gerr) {
		remaining = gerr.RemainingSeconds
	}

	msg, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Kind:             kind,
		RemainingSeconds: remaining,
	})
	if msgErr != nil {
		return errorResponse("Something went wrong.")
	}

	return errorResponse(msg.Message)
}
