package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/poolbot/internal/intent"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	dispatcher Dispatcher
	config     *Config
	logger     *slog.Logger

	// ctx is cancelled by Stop so in-flight interactions wind down
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds the configuration for the bot
type Config struct {
	// Session is an unopened discord session, see NewSession
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Dispatcher Dispatcher

	// InteractionTimeout bounds one interaction, defaults to 10s
	InteractionTimeout time.Duration

	Logger *slog.Logger
}

// NewSession creates a discord session for a bot token
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds
	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}

	if cfg.InteractionTimeout <= 0 {
		cfg.InteractionTimeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		session:    cfg.Session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		dispatcher: cfg.Dispatcher,
		config:     cfg,
		logger:     logger,
	}
	bot.ctx, bot.cancel = context.WithCancel(context.Background())

	// Register the interaction handler
	cfg.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		bot.handleInteraction(s, i)
	})

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewPoolCommand(b.dispatcher)); err != nil {
		return fmt.Errorf("failed to register pool command: %w", err)
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	b.cancel()

	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		} else {
			b.logger.Info("deleted command", "command", cmdName, "command_id", cmdID)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for one guild when
// GuildID is set and globally otherwise
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	guildID := b.config.GuildID
	b.logger.Info("registering command", "command", cmd.GetName(), "guild_id", guildID)

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s Responder, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(b.ctx, b.config.InteractionTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(ctx, s, i); err != nil {
				b.logger.Error("failed to handle command", "command", name, "channel_id", i.ChannelID, "error", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(ctx, s, i); err != nil {
			b.logger.Error("failed to handle component interaction",
				"custom_id", i.MessageComponentData().CustomID,
				"channel_id", i.ChannelID,
				"error", err,
			)
		}
	}
}

// handleComponentInteraction handles button clicks on the status message
func (b *Bot) handleComponentInteraction(ctx context.Context, s Responder, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	actor := ActorFrom(i)
	if actor.ID == "" {
		b.logger.Warn("component interaction without a user", "custom_id", customID)
		return RespondWithEphemeralMessage(s, i, unknownActorMessage)
	}

	in, err := intent.ParseAction(customID, i.ChannelID, actor)
	if err != nil {
		b.logger.Debug("ignoring unknown component", "custom_id", customID)
		return RespondWithEphemeralMessage(s, i, intent.ErrorMessage(nil, err))
	}

	return respondWithDispatch(ctx, b.dispatcher, s, i, in)
}
