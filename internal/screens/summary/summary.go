package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/router"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/store"
	"github.com/abhisek/kartu/internal/ui/components"
	"github.com/abhisek/kartu/internal/ui/layout"
	"github.com/abhisek/kartu/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
	rank    rank.Result
	modules map[string]store.ModuleStats
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. modules holds the lifetime stats of
// every module; only the ones practiced this session are shown.
func New(summary session.Summary, r rank.Result, modules map[string]store.ModuleStats) *SummaryScreen {
	return &SummaryScreen{summary: summary, rank: r, modules: modules}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The summary replaced the practice screen, so one pop is home.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Sesi selesai!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	st := sum.Stats
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Cards: %d        Correct: %d        Failed: %d        Accuracy: %.0f%%",
			st.Total(), st.Correct, st.Failed, st.Accuracy()*100)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success),
		fmt.Sprintf("Best streak: %d", st.BestStreak)))
	b.WriteString("\n\n")

	rankLine := theme.RankStyle(s.rank.Rank.String()).Render(s.rank.Rank.String())
	if next := s.rank.ToNext(); next > 0 {
		rankLine += lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("   %d points to next rank", next))
	}
	b.WriteString(layout.Center(rankLine, width))
	b.WriteString("\n\n")

	if len(sum.Modules) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Modules"), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(divider, width))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	for _, name := range sum.Modules {
		ms := s.modules[name]
		bar := components.ProgressBar{
			Label:       name,
			LabelWidth:  28,
			Percent:     ms.Accuracy(),
			ShowPercent: true,
			Width:       barWidth,
		}
		b.WriteString(layout.Center(bar.View(), width))
		b.WriteString("\n")
	}

	return b.String()
}
