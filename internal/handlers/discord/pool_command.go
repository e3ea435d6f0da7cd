package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/poolbot/internal/intent"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_dispatcher.go github.com/KirkDiggler/poolbot/internal/handlers/discord Dispatcher

// Dispatcher runs an intent and produces the reply for the invoking user
type Dispatcher interface {
	Dispatch(ctx context.Context, in intent.Intent) (*intent.Reply, error)
}

const (
	SubcommandStart  = "start"
	SubcommandJoin   = "join"
	SubcommandBuyIn  = "buyin"
	SubcommandStatus = "status"
	SubcommandEnd    = "end"

	optionAmount = "amount"
)

// ErrUnknownSubcommand is returned for subcommands /pool does not define
var ErrUnknownSubcommand = errors.New("unknown subcommand")

// PoolCommand handles the /pool command
type PoolCommand struct {
	BaseCommand
	dispatcher Dispatcher
}

// NewPoolCommand creates a new pool command handler
func NewPoolCommand(dispatcher Dispatcher) *PoolCommand {
	return &PoolCommand{
		BaseCommand: BaseCommand{
			Name:        "pool",
			Description: "Buy-in pool for this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStart,
					Description: "Start a session with a default buy-in",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionAmount,
							Description: "Default buy-in, e.g. 20 or 12.50",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandJoin,
					Description: "Join the current session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandBuyIn,
					Description: "Request a buy-in",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionAmount,
							Description: "Amount, defaults to the session's buy-in",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStatus,
					Description: "Refresh the status message",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandEnd,
					Description: "End the current session",
				},
			},
		},
		dispatcher: dispatcher,
	}
}

// Handle processes a Discord interaction for the pool command
func (c *PoolCommand) Handle(ctx context.Context, s Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	actor := ActorFrom(i)
	if actor.ID == "" {
		return RespondWithEphemeralMessage(s, i, unknownActorMessage)
	}

	in, err := CommandIntent(i.ChannelID, actor, data.Options)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "Unknown /pool subcommand.")
	}

	return respondWithDispatch(ctx, c.dispatcher, s, i, in)
}

// CommandIntent turns a /pool subcommand and its options into an intent
func CommandIntent(chatID string, actor intent.Actor, options []*discordgo.ApplicationCommandInteractionDataOption) (intent.Intent, error) {
	if len(options) == 0 {
		return nil, ErrUnknownSubcommand
	}

	sub := options[0]
	amount := optionString(sub.Options, optionAmount)

	switch sub.Name {
	case SubcommandStart:
		return intent.StartSession{ChatID: chatID, Actor: actor, AmountText: amount}, nil
	case SubcommandJoin:
		return intent.Join{ChatID: chatID, Actor: actor}, nil
	case SubcommandBuyIn:
		return intent.RequestBuyIn{ChatID: chatID, Actor: actor, AmountText: amount}, nil
	case SubcommandStatus:
		return intent.Refresh{ChatID: chatID, Actor: actor}, nil
	case SubcommandEnd:
		return intent.EndSession{ChatID: chatID, Actor: actor}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSubcommand, sub.Name)
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

const unknownActorMessage = "Couldn't tell who sent that, please try again."

// ActorFrom reads the invoking user from a guild or direct-message interaction
func ActorFrom(i *discordgo.InteractionCreate) intent.Actor {
	var actor intent.Actor

	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
		actor.GivenName = i.Member.Nick
	}
	if user == nil {
		return actor
	}

	actor.ID = user.ID
	actor.Handle = user.Username
	if actor.GivenName == "" {
		actor.GivenName = user.GlobalName
	}
	return actor
}

// respondWithDispatch runs the intent and answers the interaction with its reply
func respondWithDispatch(ctx context.Context, d Dispatcher, s Responder, i *discordgo.InteractionCreate, in intent.Intent) error {
	reply, dispatchErr := d.Dispatch(ctx, in)
	if reply == nil {
		reply = &intent.Reply{Text: intent.ErrorMessage(in, dispatchErr), Ephemeral: true}
	}

	var err error
	if reply.Ephemeral {
		err = RespondWithEphemeralMessage(s, i, reply.Text)
	} else {
		err = RespondWithMessage(s, i, reply.Text)
	}

	return errors.Join(dispatchErr, err)
}
