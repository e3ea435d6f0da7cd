package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// ChannelSession is the part of a discord session used to post status messages
type ChannelSession interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// MessengerConfig holds the configuration for the messenger
type MessengerConfig struct {
	Session ChannelSession
}

// Messenger posts and edits status messages in Discord channels
type Messenger struct {
	session ChannelSession
}

// NewMessenger creates a status messenger backed by a discord session
func NewMessenger(cfg *MessengerConfig) (*Messenger, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &Messenger{session: cfg.Session}, nil
}

// SendStatus posts a new status message and returns its ID
func (m *Messenger) SendStatus(ctx context.Context, chatID string, msg *status.Message) (string, error) {
	if msg == nil {
		return "", errors.New("message cannot be nil")
	}

	sent, err := m.session.ChannelMessageSendComplex(chatID, &discordgo.MessageSend{
		Embeds:     renderEmbeds(msg),
		Components: renderComponents(msg.Rows),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send status message: %w", err)
	}

	return sent.ID, nil
}

// EditStatus replaces the embed and buttons of an existing status message
func (m *Messenger) EditStatus(ctx context.Context, chatID, messageID string, msg *status.Message) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}

	embeds := renderEmbeds(msg)
	components := renderComponents(msg.Rows)

	if _, err := m.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    chatID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit status message %s: %w", messageID, err)
	}

	return nil
}
