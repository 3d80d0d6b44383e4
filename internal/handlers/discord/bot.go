package discord

import (
	"fmt"

	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	"github.com/KirkDiggler/lockup/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// BotError is a construction error
type BotError string

func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       = BotError("config cannot be nil")
	ErrEmptyToken      = BotError("token cannot be empty")
	ErrNilCrime        = BotError("crime service cannot be nil")
	ErrNilConfinement  = BotError("confinement service cannot be nil")
	ErrNilAchievements = BotError("achievement service cannot be nil")
	ErrNilCatalog      = BotError("catalog cannot be nil")
	ErrNilMessaging    = BotError("messaging service cannot be nil")
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	components []ComponentHandler
	crimeCmd   *CrimeCommand
	config     *Config
	log        zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Crime        crime.Service
	Confinement  confinement.Service
	Achievements achievement.Service
	Catalog      catalog.Service
	Messaging    messaging.Service

	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}

	if cfg.Crime == nil {
		return nil, ErrNilCrime
	}

	if cfg.Confinement == nil {
		return nil, ErrNilConfinement
	}

	if cfg.Achievements == nil {
		return nil, ErrNilAchievements
	}

	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	log := logger.OrNop(cfg.Logger)

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		log:        log,
		crimeCmd: NewCrimeCommand(&CrimeCommandConfig{
			Crime:        cfg.Crime,
			Confinement:  cfg.Confinement,
			Achievements: cfg.Achievements,
			Catalog:      cfg.Catalog,
			Messaging:    cfg.Messaging,
			Logger:       log,
		}),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.crimeCmd); err != nil {
		return fmt.Errorf("failed to register crime command: %w", err)
	}
	b.components = append(b.components, b.crimeCmd)

	b.log.Info().Msg("discord bot is running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.log.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands go to the
// configured guild when there is one, otherwise globally.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

// appID falls back to the session user when no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.log.Error().Err(err).Str("command", name).Msg("error handling command")
			}
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for _, h := range b.components {
			if !h.HandlesComponent(customID) {
				continue
			}
			if err := h.HandleComponent(s, i); err != nil {
				b.log.Error().Err(err).Str("custom_id", customID).Msg("error handling component")
			}
			return
		}
		if err := RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID)); err != nil {
			b.log.Error().Err(err).Str("custom_id", customID).Msg("error responding to unknown component")
		}
	}
}
