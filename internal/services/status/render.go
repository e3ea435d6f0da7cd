package status

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/poolbot/internal/models"
	"github.com/KirkDiggler/poolbot/internal/money"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
)

// MaxInlinePending is how many pending requests get vote buttons. The main
// control row plus four vote rows is the most a chat message can carry.
const MaxInlinePending = 4

// maxFieldLength is the longest field value the chat accepts
const maxFieldLength = 1024

const (
	colorActive = 0x2ecc71
	colorEnded  = 0x95a5a6
)

// Render draws the status message for a session
func Render(session *models.Session, view *projector.View) *Message {
	ended := session.Status.IsEnded()

	msg := &Message{
		Title:       "💰 Buy-in pool",
		Description: fmt.Sprintf("Default buy-in: **%s**\nJoin the pool, request buy-ins and vote on pending requests.", money.Format(session.DefaultAmount)),
		Color:       colorActive,
	}
	if ended {
		msg.Title = "🏁 Buy-in pool (ended)"
		msg.Description = "This session has ended. Final totals:"
		if session.EndedAt != nil {
			msg.Description = fmt.Sprintf("This session ended <t:%d:f>. Final totals:", session.EndedAt.Unix())
		}
		msg.Color = colorEnded
	}

	msg.Fields = append(msg.Fields, Field{
		Name:  fmt.Sprintf("Players (%d)", len(view.Players)),
		Value: truncate(playerLines(view.Players)),
	})

	msg.Fields = append(msg.Fields, Field{
		Name: "Totals",
		Value: fmt.Sprintf("Approved: **%s**\nPending: %s (%d %s)",
			money.Format(view.Totals.Approved),
			money.Format(view.Totals.Pending),
			view.Totals.PendingCount,
			plural(view.Totals.PendingCount, "request", "requests"),
		),
	})

	if len(view.Pending) > 0 {
		msg.Fields = append(msg.Fields, Field{
			Name:  "Pending requests",
			Value: truncate(pendingLines(view.Pending, ended)),
		})
	}

	if !ended {
		msg.Rows = controls(view.Pending)
	}

	return msg
}

// Text flattens a message for plain replies
func (m *Message) Text() string {
	var b strings.Builder
	b.WriteString("**" + m.Title + "**\n")
	if m.Description != "" {
		b.WriteString(m.Description + "\n")
	}
	for _, f := range m.Fields {
		b.WriteString("\n**" + f.Name + "**\n" + f.Value + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func playerLines(players []projector.PlayerRow) string {
	if len(players) == 0 {
		return "No players yet"
	}

	lines := make([]string, 0, len(players))
	for _, p := range players {
		line := fmt.Sprintf("**%s**: %s", p.Label, money.Format(p.Approved))
		if p.PendingCount > 0 {
			line += fmt.Sprintf(" (%d pending)", p.PendingCount)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func pendingLines(pending []projector.PendingRow, ended bool) string {
	lines := make([]string, 0, len(pending)+1)
	for _, p := range pending {
		lines = append(lines, fmt.Sprintf("#%d **%s** %s · ✅ %d / ❌ %d",
			p.RequestID, p.RequesterLabel, money.Format(p.Amount), p.Tally.Approvals, p.Tally.Rejections))
	}
	if extra := len(pending) - MaxInlinePending; extra > 0 && !ended {
		lines = append(lines, fmt.Sprintf("+%d more, vote buttons appear as earlier requests resolve", extra))
	}
	return strings.Join(lines, "\n")
}

func controls(pending []projector.PendingRow) [][]Button {
	rows := [][]Button{{
		{Label: "Join", ActionID: ActionJoin, Style: ButtonSuccess, Emoji: "🙋"},
		{Label: "Request buy-in", ActionID: ActionBuyIn, Style: ButtonPrimary, Emoji: "💵"},
		{Label: "Refresh", ActionID: ActionRefresh, Style: ButtonSecondary, Emoji: "🔄"},
		{Label: "End", ActionID: ActionEnd, Style: ButtonDanger, Emoji: "🏁"},
	}}

	for i, p := range pending {
		if i == MaxInlinePending {
			break
		}
		rows = append(rows, []Button{
			{
				Label:    fmt.Sprintf("Approve #%d (%s)", p.RequestID, money.Format(p.Amount)),
				ActionID: VoteAction(models.DecisionApprove, p.RequestID),
				Style:    ButtonSuccess,
			},
			{
				Label:    fmt.Sprintf("Reject #%d", p.RequestID),
				ActionID: VoteAction(models.DecisionReject, p.RequestID),
				Style:    ButtonDanger,
			},
		})
	}

	return rows
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxFieldLength {
		return s
	}
	r := []rune(s)
	return string(r[:maxFieldLength-1]) + "…"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
