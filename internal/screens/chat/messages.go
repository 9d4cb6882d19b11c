package chat

import (
	"context"

	tea "charm.land/bubbletea/v2"

	tutor "github.com/abhisek/kartu/internal/chat"
)

// replyMsg carries the tutor's answer to one turn.
type replyMsg struct {
	reply tutor.Message
	err   error
}

func openCmd(t *tutor.Tutor) tea.Cmd {
	return func() tea.Msg {
		m, err := t.Open(context.Background())
		return replyMsg{reply: m, err: err}
	}
}

func sendCmd(t *tutor.Tutor, text string) tea.Cmd {
	return func() tea.Msg {
		m, err := t.Send(context.Background(), text)
		return replyMsg{reply: m, err: err}
	}
}

func suggestCmd(t *tutor.Tutor) tea.Cmd {
	return func() tea.Msg {
		m, err := t.Suggest(context.Background())
		return replyMsg{reply: m, err: err}
	}
}

func explainCmd(t *tutor.Tutor) tea.Cmd {
	return func() tea.Msg {
		m, err := t.Explain(context.Background())
		return replyMsg{reply: m, err: err}
	}
}
