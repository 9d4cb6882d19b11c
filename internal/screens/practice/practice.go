// Package practice implements the flashcard practice screen.
package practice

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/router"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/screens/summary"
	"github.com/abhisek/kartu/internal/selection"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/components"
	"github.com/abhisek/kartu/internal/ui/layout"
)

// PracticeScreen shows one card at a time and grades typed answers.
type PracticeScreen struct {
	ctrl  *session.Controller
	input components.TextInput

	card     *session.Card
	phase    session.Phase
	attempts int
	last     *session.Outcome

	// unlockMiss is set when a locked card was answered wrongly.
	unlockMiss bool
	empty      bool
	err        error

	// loading is set while a draw or grade is in flight.
	loading bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)

// New creates a practice screen over a started controller.
func New(ctrl *session.Controller) *PracticeScreen {
	return &PracticeScreen{
		ctrl:    ctrl,
		input:   components.NewTextInput("type your answer", 60),
		loading: true,
	}
}

// Init resumes an unanswered card or draws a new one.
func (p *PracticeScreen) Init() tea.Cmd {
	card := p.ctrl.Card()
	if card == nil || p.ctrl.Phase() == session.PhaseAnswered {
		return tea.Batch(p.input.Init(), nextCmd(p.ctrl))
	}
	return tea.Batch(p.input.Init(), func() tea.Msg { return cardMsg{card: card} })
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

// HandlesEscape makes Esc end the session through the summary.
func (p *PracticeScreen) HandlesEscape() bool {
	return true
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	switch p.phase {
	case session.PhaseAsking:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Check"},
			layout.KeyHint{Key: "Ctrl+G", Description: "Give up"},
		)
	case session.PhaseLocked:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Unlock"})
	case session.PhaseAnswered:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	if p.phase != session.PhaseLocked {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Jakarta tokens"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "End session"})
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardMsg:
		return p, p.handleCard(msg)
	case gradedMsg:
		return p, p.handleGraded(msg)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PracticeScreen) handleCard(msg cardMsg) tea.Cmd {
	p.loading = false
	p.last = nil
	p.unlockMiss = false
	p.input.Clear()
	p.card = msg.card
	p.phase = p.ctrl.Phase()
	p.attempts = p.ctrl.AttemptsLeft()
	p.empty = errors.Is(msg.err, selection.ErrEmptyPool)
	p.err = nil
	if msg.err != nil && !p.empty {
		p.err = msg.err
	}
	return nil
}

func (p *PracticeScreen) handleGraded(msg gradedMsg) tea.Cmd {
	p.loading = false
	// A failed save still leaves the in-memory grade in place.
	p.err = msg.err
	if errors.Is(msg.err, session.ErrNoCard) || errors.Is(msg.err, session.ErrLocked) || errors.Is(msg.err, session.ErrAnswered) {
		return nil
	}
	out := msg.outcome
	p.last = &out
	p.phase = p.ctrl.Phase()
	p.attempts = p.ctrl.AttemptsLeft()

	switch out.Verdict {
	case session.VerdictCorrect:
		p.input.Submit(true)
	case session.VerdictSoftFail:
		p.input.Submit(false)
	case session.VerdictFail:
		p.input.Clear()
	}
	return nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return p, p.finish()
	case "ctrl+t":
		if p.phase == session.PhaseLocked || p.loading {
			return p, nil
		}
		p.loading = true
		return p, toggleJakartaCmd(p.ctrl)
	case "ctrl+g":
		if p.phase == session.PhaseAsking && !p.loading {
			p.loading = true
			return p, giveUpCmd(p.ctrl)
		}
		return p, nil
	case "enter":
		return p, p.handleEnter()
	}

	if p.phase == session.PhaseAsking || p.phase == session.PhaseLocked {
		p.unlockMiss = false
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleEnter() tea.Cmd {
	if p.loading {
		return nil
	}
	answer := p.input.Trimmed()
	switch p.phase {
	case session.PhaseAsking:
		if answer == "" {
			return nil
		}
		p.loading = true
		return submitCmd(p.ctrl, answer)
	case session.PhaseLocked:
		if p.ctrl.Unlock(answer) {
			p.loading = true
			return nextCmd(p.ctrl)
		}
		p.unlockMiss = true
		p.input.Submit(false)
	case session.PhaseAnswered:
		p.loading = true
		return nextCmd(p.ctrl)
	}
	return nil
}

// finish leaves practice. After at least one graded card the summary
// replaces this screen.
func (p *PracticeScreen) finish() tea.Cmd {
	if p.ctrl.Stats().Total() == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum := summary.New(p.ctrl.Summary(), rank.Compute(p.ctrl.Items()), p.ctrl.ModuleStats())
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}
