// Package stats implements the statistics screen.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/store"
	"github.com/abhisek/kartu/internal/ui/components"
	"github.com/abhisek/kartu/internal/ui/layout"
	"github.com/abhisek/kartu/internal/ui/theme"
)

// StatsScreen shows rank, session, lifetime and per-module stats.
type StatsScreen struct {
	ctrl   *session.Controller
	pack   *content.Pack
	offset int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a stats screen.
func New(ctrl *session.Controller, pack *content.Pack) *StatsScreen {
	return &StatsScreen{ctrl: ctrl, pack: pack}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	lines := s.lines(width)
	visible := max(height, 1)
	s.offset = min(s.offset, max(len(lines)-visible, 0))
	end := min(len(lines), s.offset+visible)
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *StatsScreen) lines(width int) []string {
	r := rank.Compute(s.ctrl.Items())
	st := s.ctrl.Stats()
	life := s.ctrl.Lifetime()

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	text := lipgloss.NewStyle().Foreground(theme.Text)

	var out []string
	section := func(title string) {
		out = append(out, "", theme.Label.Render("  "+title))
	}
	row := func(label string, value string) {
		out = append(out, dim.Render(fmt.Sprintf("    %-22s", label))+text.Render(value))
	}

	section("Rank")
	badge := theme.RankStyle(r.Rank.String()).Render(r.Rank.String())
	next := "top rank"
	if n := r.ToNext(); n > 0 {
		next = fmt.Sprintf("%d points to next rank", n)
	}
	out = append(out, "    "+badge+dim.Render(fmt.Sprintf("   %d points over %d concepts   %s", r.Total, r.Concepts, next)))

	section("This session")
	row("Correct", fmt.Sprintf("%d", st.Correct))
	row("Failed", fmt.Sprintf("%d", st.Failed))
	row("Streak", fmt.Sprintf("%d (best %d)", st.CurrentStreak, st.BestStreak))

	section(fmt.Sprintf("Lifetime (%s)", s.ctrl.Mode()))
	row("Cards", fmt.Sprintf("%d", life.Total))
	row("Completed", fmt.Sprintf("%d", life.Complete))
	row("Failed", fmt.Sprintf("%d", life.Failed))
	row("Best streak", fmt.Sprintf("%d", life.BestStreak))
	row("Average streak", fmt.Sprintf("%.1f over %d streaks", life.AverageStreak, life.Streaks))
	row("Words", tally(life.Words))
	row("Sentences", tally(life.Sentences))

	section("Modules")
	mods := s.ctrl.ModuleStats()
	barWidth := min(width-8, 72)
	practiced := false
	for _, name := range s.pack.ModuleNames() {
		ms, ok := mods[name]
		if !ok || ms.Attempted == 0 {
			continue
		}
		practiced = true
		bar := components.ProgressBar{
			Label:       name,
			LabelWidth:  30,
			Percent:     ms.Accuracy(),
			ShowPercent: true,
			Width:       barWidth,
		}
		out = append(out, "    "+bar.View()+dim.Render(fmt.Sprintf("  %d/%d  best %d", ms.Correct, ms.Attempted, ms.BestStreak)))
	}
	if !practiced {
		out = append(out, dim.Render("    No module practiced yet."))
	}
	return out
}

func tally(t store.Tally) string {
	if t.Total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", t.Correct, t.Total, float64(t.Correct)/float64(t.Total)*100)
}
