// Package modules implements the module picker and pool filters.
package modules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/layout"
	"github.com/abhisek/kartu/internal/ui/theme"
)

// filterMsg reports the result of a filter change.
type filterMsg struct {
	err error
}

type row struct {
	category string
	module   content.Module
}

func (r row) isHeader() bool { return r.category != "" }

// ModulesScreen lists modules by category and edits the pool filter.
type ModulesScreen struct {
	ctrl   *session.Controller
	rows   []row
	cursor int

	empty bool
	err   error
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.KeyHintProvider = (*ModulesScreen)(nil)

// New creates a module picker over the modules of pack.
func New(ctrl *session.Controller, pack *content.Pack) *ModulesScreen {
	s := &ModulesScreen{ctrl: ctrl}
	for _, cat := range pack.Catalog() {
		s.rows = append(s.rows, row{category: cat.Name})
		for _, m := range cat.Modules {
			s.rows = append(s.rows, row{module: m})
		}
	}
	s.cursor = s.step(-1, 1)
	return s
}

func (s *ModulesScreen) Init() tea.Cmd {
	return nil
}

func (s *ModulesScreen) Title() string {
	return "Modules"
}

func (s *ModulesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "a", Description: "All"},
		{Key: "w", Description: "Weakest"},
		{Key: "c", Description: "Content"},
		{Key: "r", Description: "Register"},
		{Key: "t", Description: "Jakarta"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case filterMsg:
		s.empty = errors.Is(msg.err, selection.ErrEmptyPool)
		s.err = nil
		if msg.err != nil && !s.empty {
			s.err = msg.err
		}
		return s, nil
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ModulesScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := s.ctrl
	switch msg.String() {
	case "up", "k":
		s.cursor = s.step(s.cursor, -1)
	case "down", "j":
		s.cursor = s.step(s.cursor, 1)
	case "space", " ", "enter":
		if s.cursor < 0 {
			return nil
		}
		name := s.rows[s.cursor].module.Name
		return apply(func(ctx context.Context) error {
			_, err := ctrl.ToggleModule(ctx, name)
			return err
		})
	case "a":
		return apply(func(ctx context.Context) error {
			_, err := ctrl.SelectAllModules(ctx)
			return err
		})
	case "w":
		return apply(func(ctx context.Context) error {
			_, err := ctrl.SelectWeakest(ctx)
			return err
		})
	case "c":
		f := ctrl.Filter()
		f.Kind = nextKind(f.Kind)
		return apply(func(ctx context.Context) error {
			_, err := ctrl.SetFilter(ctx, f)
			return err
		})
	case "r":
		f := ctrl.Filter()
		f.Register = nextRegister(f.Register)
		return apply(func(ctx context.Context) error {
			_, err := ctrl.SetFilter(ctx, f)
			return err
		})
	case "t":
		return apply(func(ctx context.Context) error {
			_, err := ctrl.SetShowJakarta(ctx, !ctrl.ShowJakarta())
			return err
		})
	}
	return nil
}

// apply runs a filter change off the update loop.
func apply(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return filterMsg{err: fn(context.Background())}
	}
}

// step moves from index i by dir to the next module row, staying put at
// either end. It returns -1 when there are no module rows.
func (s *ModulesScreen) step(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(s.rows); j += dir {
		if !s.rows[j].isHeader() {
			return j
		}
	}
	if i >= 0 && i < len(s.rows) {
		return i
	}
	return -1
}

var kinds = []content.Kind{content.KindAll, content.KindWords, content.KindSentences}

var registers = []content.RegisterFilter{content.RegisterAll, content.RegisterFormal, content.RegisterInformal}

func nextKind(k content.Kind) content.Kind {
	for i, v := range kinds {
		if v == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return content.KindAll
}

func nextRegister(r content.RegisterFilter) content.RegisterFilter {
	for i, v := range registers {
		if v == r {
			return registers[(i+1)%len(registers)]
		}
	}
	return content.RegisterAll
}

func (s *ModulesScreen) View(width, height int) string {
	f := s.ctrl.Filter()
	stats := s.ctrl.ModuleStats()

	var b strings.Builder
	b.WriteString(s.renderFilterLine(f))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	lines := make([]string, 0, len(s.rows))
	for i, r := range s.rows {
		if r.isHeader() {
			lines = append(lines, "\n"+theme.Label.Render("  "+r.category))
			continue
		}
		lines = append(lines, s.renderModule(i, r.module, f, stats[r.module.Name].Accuracy(), stats[r.module.Name].Attempted))
	}

	visible := max(height-5, 1)
	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}
	end := min(len(lines), start+visible)
	b.WriteString(strings.Join(lines[start:end], "\n"))

	switch {
	case s.err != nil:
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("  Error: "+s.err.Error()))
	case s.empty:
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render("  No cards match this filter."))
	}
	return b.String()
}

func (s *ModulesScreen) renderFilterLine(f content.Filter) string {
	jakarta := "off"
	if s.ctrl.ShowJakarta() {
		jakarta = "on"
	}
	scope := "selected modules"
	switch {
	case f.Weakest:
		scope = fmt.Sprintf("weakest %d", f.WeakestLimit)
	case len(f.Modules) == 0:
		scope = "all modules"
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	return dim.Render("  Pool: ") + val.Render(scope) +
		dim.Render("   Content: ") + val.Render(string(f.Kind)) +
		dim.Render("   Register: ") + val.Render(string(f.Register)) +
		dim.Render("   Jakarta tokens: ") + val.Render(jakarta) +
		dim.Render(fmt.Sprintf("   (%d cards)", s.ctrl.PoolSize()))
}

func (s *ModulesScreen) renderModule(i int, m content.Module, f content.Filter, acc float64, attempted int) string {
	checked := !f.Weakest && (len(f.Modules) == 0 || f.Modules[m.Name])
	box := "[ ]"
	if checked {
		box = "[x]"
	}

	name := m.Name
	if m.Jakarta {
		name += " (JKT)"
	}
	detail := fmt.Sprintf("%d words · %d sentences", m.Words, m.Sentences)
	if attempted > 0 {
		detail += fmt.Sprintf(" · %.0f%% of %d", acc*100, attempted)
	}

	prefix := "    "
	style := theme.Unselected
	if i == s.cursor {
		prefix = "  ▸ "
		style = theme.Selected
	}
	if f.Weakest {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}
	return style.Render(fmt.Sprintf("%s%s %-34s", prefix, box, name)) + theme.Hint.Render(detail)
}
