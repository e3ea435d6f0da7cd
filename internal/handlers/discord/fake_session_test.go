package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// recordingSession captures what the handlers send to discord
type recordingSession struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	sent      []*discordgo.MessageSend
	edits     []*discordgo.MessageEdit
	err       error
}

func (r *recordingSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, resp)
	return r.err
}

func (r *recordingSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, data)
	return &discordgo.Message{ID: "message-1", ChannelID: channelID}, nil
}

func (r *recordingSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.edits = append(r.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (r *recordingSession) lastResponse() *discordgo.InteractionResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.responses) == 0 {
		return nil
	}
	return r.responses[len(r.responses)-1]
}
