package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kartu/internal/session"
)

// cardMsg carries a freshly drawn card, or the reason none was drawn.
type cardMsg struct {
	card *session.Card
	err  error
}

// gradedMsg carries the outcome of a submitted answer or a give-up.
type gradedMsg struct {
	outcome session.Outcome
	err     error
}

// nextCmd draws the next card.
func nextCmd(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		card, err := ctrl.Next(context.Background())
		return cardMsg{card: card, err: err}
	}
}

// submitCmd grades answer against the current card.
func submitCmd(ctrl *session.Controller, answer string) tea.Cmd {
	return func() tea.Msg {
		out, err := ctrl.Submit(context.Background(), answer)
		return gradedMsg{outcome: out, err: err}
	}
}

// giveUpCmd fails the current card.
func giveUpCmd(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		out, err := ctrl.GiveUp(context.Background())
		return gradedMsg{outcome: out, err: err}
	}
}

// toggleJakartaCmd flips Jakarta particle display and draws anew.
func toggleJakartaCmd(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		card, err := ctrl.SetShowJakarta(context.Background(), !ctrl.ShowJakarta())
		return cardMsg{card: card, err: err}
	}
}
