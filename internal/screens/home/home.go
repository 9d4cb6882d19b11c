// Package home implements the main menu.
package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kartu/internal/chat"
	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/router"
	"github.com/abhisek/kartu/internal/screen"
	chatscreen "github.com/abhisek/kartu/internal/screens/chat"
	"github.com/abhisek/kartu/internal/screens/modules"
	"github.com/abhisek/kartu/internal/screens/practice"
	"github.com/abhisek/kartu/internal/screens/stats"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/components"
)

// dashboard is the learner summary shown above the menu.
type dashboard struct {
	rank   string
	points int
	pool   int
	mascot MascotVariant
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctrl *session.Controller
	menu components.Menu
	dash dashboard
	chat bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ router.Resumer = (*HomeScreen)(nil)

// New creates the home screen. A nil tutor disables chat.
func New(ctrl *session.Controller, pack *content.Pack, tutor *chat.Tutor) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	var chatScreen *chatscreen.ChatScreen
	chatItem := components.MenuItem{Label: "Chat", Disabled: tutor == nil}
	if tutor == nil {
		chatItem.Hint = "needs an API key"
	} else {
		chatItem.Action = push(func() screen.Screen {
			// One screen keeps the conversation across visits.
			if chatScreen == nil {
				chatScreen = chatscreen.New(tutor, ctrl, pack)
			}
			return chatScreen
		})
	}

	items := []components.MenuItem{
		{Label: "Practice", Action: push(func() screen.Screen { return practice.New(ctrl) })},
		{Label: "Modules", Action: push(func() screen.Screen { return modules.New(ctrl, pack) })},
		{Label: "Stats", Action: push(func() screen.Screen { return stats.New(ctrl, pack) })},
		chatItem,
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{
		ctrl: ctrl,
		menu: components.NewMenu(items),
		chat: tutor != nil,
	}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the dashboard when a pushed screen is popped.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	r := rank.Compute(h.ctrl.Items())
	mascot := MascotIdle
	switch {
	case r.Rank > rank.Silver:
		mascot = MascotCelebrating
	case r.Delta < 0:
		mascot = MascotAlert
	}
	h.dash = dashboard{
		rank:   r.Rank.String(),
		points: r.Total,
		pool:   h.ctrl.PoolSize(),
		mascot: mascot,
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 100
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(h.dash.mascot)))
	}
	sections = append(sections, renderStatsBar(h.dash, cw))
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()))
	if !h.chat {
		sections = append(sections, renderChatNote(cw))
	}
	return renderFrame(joinSections(sections), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
