package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/poolbot/internal/services/status"
)

func TestRenderEmbeds(t *testing.T) {
	embeds := renderEmbeds(&status.Message{
		Title:       "Pool",
		Description: "Default buy-in: **50.00**",
		Color:       0x2ecc71,
		Fields: []status.Field{
			{Name: "Players (1)", Value: "**ann**: 0.00"},
			{Name: "Totals", Value: "Approved: **0.00**"},
		},
	})

	require.Len(t, embeds, 1)
	assert.Equal(t, "Pool", embeds[0].Title)
	assert.Equal(t, 0x2ecc71, embeds[0].Color)
	require.Len(t, embeds[0].Fields, 2)
	assert.Equal(t, "Players (1)", embeds[0].Fields[0].Name)
	assert.Equal(t, "Approved: **0.00**", embeds[0].Fields[1].Value)
}

func TestRenderComponents(t *testing.T) {
	components := renderComponents([][]status.Button{
		{
			{Label: "Join", ActionID: status.ActionJoin, Style: status.ButtonPrimary, Emoji: "🙋"},
			{Label: "End", ActionID: status.ActionEnd, Style: status.ButtonDanger},
		},
		{},
		{
			{Label: "Approve #1", ActionID: status.VoteAction("approve", 1), Style: status.ButtonSuccess},
			{Label: "Reject #1", ActionID: status.VoteAction("reject", 1), Style: status.ButtonSecondary},
		},
	})

	require.Len(t, components, 2)

	first, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, first.Components, 2)

	join := first.Components[0].(discordgo.Button)
	assert.Equal(t, "pool:join", join.CustomID)
	assert.Equal(t, discordgo.PrimaryButton, join.Style)
	require.NotNil(t, join.Emoji)
	assert.Equal(t, "🙋", join.Emoji.Name)

	end := first.Components[1].(discordgo.Button)
	assert.Equal(t, discordgo.DangerButton, end.Style)
	assert.Nil(t, end.Emoji)

	votes := components[1].(discordgo.ActionsRow)
	assert.Equal(t, discordgo.SuccessButton, votes.Components[0].(discordgo.Button).Style)
	assert.Equal(t, discordgo.SecondaryButton, votes.Components[1].(discordgo.Button).Style)
}

func TestRenderComponentsEmptyClearsButtons(t *testing.T) {
	components := renderComponents(nil)
	assert.NotNil(t, components)
	assert.Empty(t, components)
}
