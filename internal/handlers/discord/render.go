package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/poolbot/internal/services/status"
)

// renderEmbeds converts a status message into the embed shown in the channel
func renderEmbeds(msg *status.Message) []*discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  f.Name,
			Value: f.Value,
		})
	}

	return []*discordgo.MessageEmbed{
		{
			Title:       msg.Title,
			Description: msg.Description,
			Color:       msg.Color,
			Fields:      fields,
		},
	}
}

// renderComponents converts button rows into action rows. An ended session
// yields an empty, non-nil slice so an edit clears the old buttons.
func renderComponents(rows [][]status.Button) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			button := discordgo.Button{
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				CustomID: b.ActionID,
			}
			if b.Emoji != "" {
				button.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
			}
			buttons = append(buttons, button)
		}

		components = append(components, discordgo.ActionsRow{Components: buttons})
	}
	return components
}

func buttonStyle(style status.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case status.ButtonSuccess:
		return discordgo.SuccessButton
	case status.ButtonDanger:
		return discordgo.DangerButton
	case status.ButtonSecondary:
		return discordgo.SecondaryButton
	default:
		return discordgo.PrimaryButton
	}
}
