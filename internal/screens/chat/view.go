package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	tutor "github.com/abhisek/kartu/internal/chat"
	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/ui/theme"
)

func (c *ChatScreen) View(width, height int) string {
	bubbleWidth := min(width*2/3, 72)

	var lines []string
	for _, m := range c.conv.Messages() {
		lines = append(lines, strings.Split(renderMessage(m, bubbleWidth, width), "\n")...)
	}
	if c.waiting {
		lines = append(lines, theme.Hint.Render("  …"))
	}

	footer := []string{""}
	if c.notice != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Warning).Render("  "+c.notice))
	}
	footer = append(footer, "  "+c.input.View())

	visible := max(height-len(footer), 1)
	c.scroll = min(c.scroll, max(len(lines)-visible, 0))
	end := len(lines) - c.scroll
	start := max(end-visible, 0)

	body := strings.Join(lines[start:end], "\n")
	if pad := visible - (end - start); pad > 0 {
		body = strings.Repeat("\n", pad) + body
	}
	return body + "\n" + strings.Join(footer, "\n")
}

// renderMessage draws one bubble. Learner bubbles sit on the right.
func renderMessage(m tutor.Message, bubbleWidth, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Content))

	if m.Translation != "" && !m.HideTranslation && m.Translation != m.Content {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(m.Translation))
	}
	if m.SuggestedFix != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("Try: " + m.SuggestedFix))
	}
	if m.ShowSuggestions && len(m.SuggestedReplies) > 0 {
		for _, s := range m.SuggestedReplies {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("• " + s))
		}
	}

	style := theme.TutorBubble
	switch {
	case m.Role == llm.RoleUser:
		style = theme.UserBubble
	case m.Err:
		style = theme.TutorBubble.BorderForeground(theme.Error)
	case m.IsHelp:
		style = theme.HelpBubble
	}
	text := b.String()
	bubble := style.Width(min(bubbleWidth, lipgloss.Width(text)+4)).Render(text)

	if m.Role == llm.RoleUser {
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, bubble)
	}
	return "  " + strings.ReplaceAll(bubble, "\n", "\n  ")
}
