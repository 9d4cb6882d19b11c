package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kartu/internal/chat"
	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/router"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/screens/home"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/layout"
)

// Options wires the TUI to a running session.
type Options struct {
	Controller *session.Controller
	Pack       *content.Pack
	// Tutor is nil when no LLM provider is configured.
	Tutor *chat.Tutor
	Log   *logrus.Entry
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *session.Controller
	log    *logrus.Entry
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return AppModel{
		router: router.New(home.New(opts.Controller, opts.Pack, opts.Tutor)),
		ctrl:   opts.Controller,
		log:    log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.log.Info("quit")
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarises the learner for the header.
func (m AppModel) status() layout.Status {
	if m.ctrl == nil {
		return layout.Status{}
	}
	r := rank.Compute(m.ctrl.Items())
	return layout.Status{
		Points: r.Total,
		Rank:   r.Rank.String(),
		Streak: m.ctrl.Stats().CurrentStreak,
	}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
