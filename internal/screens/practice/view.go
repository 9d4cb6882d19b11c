package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/item"
	"github.com/abhisek/kartu/internal/scoring"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/layout"
	"github.com/abhisek/kartu/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	switch {
	case p.empty:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n\nNo cards match the current filter.\n\nPick modules from the home screen.")
	case p.card == nil && p.err != nil:
		return centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\n\nError: %s\n\nPress Esc to go back.", p.err))
	case p.card == nil:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n\nShuffling cards...")
	}

	var b strings.Builder
	b.WriteString(p.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(p.renderCard(width))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(p.input.View(), width))
	b.WriteString("\n\n")
	b.WriteString(p.renderFeedback(width))

	if p.err != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error), "Could not save progress: "+p.err.Error()))
	}
	return b.String()
}

// renderInfoLine shows the card's module on the left and the session
// counters on the right.
func (p *PracticeScreen) renderInfoLine(width int) string {
	si := p.card.Item
	left := theme.Label.Render("  "+si.Module) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %s · %s", si.Type, si.Register))

	st := p.ctrl.Stats()
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("pool %d  ", p.ctrl.PoolSize())) +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d  ", st.Correct)) +
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d  ", st.Failed)) +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("streak %d (best %d)", st.CurrentStreak, st.BestStreak))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (p *PracticeScreen) renderCard(width int) string {
	card := p.card
	prompt := "Translate to English"
	if card.Direction == session.EnglishToIndo {
		prompt = "Translate to Indonesian"
	}

	var b strings.Builder
	b.WriteString(centered(width, theme.Subtitle, prompt))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Render(card.Question)
	b.WriteString(layout.Center(theme.Card.Render(question), width))

	if len(card.Labels) > 0 {
		b.WriteString("\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
			"["+strings.Join(card.Labels, "] [")+"]"))
	}
	if card.Direction == session.IndoToEnglish && len(card.Slang) > 0 {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint, renderSlang(card.Slang)))
	}
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Attempts %s    Points %d", attemptDots(p.attempts), card.Item.Stats.Points)))
	return b.String()
}

func (p *PracticeScreen) renderFeedback(width int) string {
	if p.phase == session.PhaseLocked {
		answer := p.card.Answer
		lines := centered(width, theme.Incorrect, "Jawabannya: "+answer)
		if p.unlockMiss {
			return lines + "\n" + centered(width, theme.Locked, "Not yet. Type the answer exactly to continue.")
		}
		return lines + "\n" + centered(width, theme.Hint, "Type the answer to unlock the next card.")
	}

	if p.last == nil {
		return ""
	}
	out := p.last
	switch out.Verdict {
	case session.VerdictCorrect:
		text := fmt.Sprintf("Benar! +%d", out.Delta)
		if out.Delta == 0 {
			text = "Benar!"
		}
		return centered(width, theme.Correct, text) + "\n" +
			centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), out.Answer)
	case session.VerdictSoftFail:
		noun := "attempts"
		if out.AttemptsLeft == 1 {
			noun = "attempt"
		}
		return centered(width, theme.Incorrect, fmt.Sprintf("Belum tepat. %d %s left.", out.AttemptsLeft, noun))
	}
	return ""
}

func renderSlang(tokens []item.Slang) string {
	parts := make([]string, len(tokens))
	for i, s := range tokens {
		parts[i] = s.Token + ": " + s.Meaning
	}
	return strings.Join(parts, "   ")
}

// attemptDots renders remaining attempts as filled dots.
func attemptDots(left int) string {
	left = max(0, min(left, scoring.MaxAttempts))
	return strings.Repeat("●", left) + strings.Repeat("○", scoring.MaxAttempts-left)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
