// Package chat implements the practice chat screen.
package chat

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	tutor "github.com/abhisek/kartu/internal/chat"
	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/screen"
	"github.com/abhisek/kartu/internal/session"
	"github.com/abhisek/kartu/internal/ui/components"
	"github.com/abhisek/kartu/internal/ui/layout"
)

// ChatScreen is a conversation with the tutor over the active modules.
type ChatScreen struct {
	conv  *tutor.Tutor
	ctrl  *session.Controller
	pack  *content.Pack
	input components.TextInput

	modules []string
	waiting bool
	notice  string

	// pick cycles through the fix and suggestions of the last reply.
	pick int
	// scroll is the number of lines scrolled up from the bottom.
	scroll int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat screen. The tutor keeps its conversation across visits.
func New(conv *tutor.Tutor, ctrl *session.Controller, pack *content.Pack) *ChatScreen {
	return &ChatScreen{
		conv:  conv,
		ctrl:  ctrl,
		pack:  pack,
		input: components.NewTextInput("tulis pesan… (Indonesian or English)", 70),
	}
}

// ActiveModules returns the modules the learner is practicing, in pack
// order. Weakest mode and an empty selection both mean every module.
func ActiveModules(f content.Filter, pack *content.Pack) []string {
	names := pack.ModuleNames()
	if f.Weakest || len(f.Modules) == 0 {
		return names
	}
	return lo.Filter(names, func(n string, _ int) bool { return f.Modules[n] })
}

// Init scopes the tutor to the active modules and opens a conversation
// unless one is already running.
func (c *ChatScreen) Init() tea.Cmd {
	modules := ActiveModules(c.ctrl.Filter(), c.pack)
	if !slices.Equal(modules, c.modules) {
		c.modules = modules
		c.conv.SetScope(tutor.Vocab(c.pack.Items, modules), modules)
	}
	if !c.conv.HasVocab() {
		c.notice = tutor.ErrNoVocab.Error()
		return nil
	}
	cmds := []tea.Cmd{c.input.Init()}
	if len(c.conv.Messages()) == 0 {
		c.waiting = true
		cmds = append(cmds, openCmd(c.conv))
	}
	return tea.Batch(cmds...)
}

func (c *ChatScreen) Title() string {
	return "Chat · " + c.conv.Style().Label()
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Use suggestion"},
		{Key: "Ctrl+S", Description: "Suggest"},
		{Key: "Ctrl+E", Description: "Explain"},
		{Key: "Ctrl+Y", Description: "Style"},
		{Key: "Ctrl+N", Description: "New chat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		c.scroll = 0
		c.pick = 0
		c.notice = ""
		// Provider failures already show up as an error bubble.
		if msg.err != nil && !msg.reply.Err {
			c.notice = msg.err.Error()
		}
		return c, nil
	case tea.KeyMsg:
		return c, c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := c.input.Trimmed()
		if text == "" || c.waiting {
			return nil
		}
		c.input.Clear()
		return c.start(sendCmd(c.conv, text))
	case "ctrl+s":
		return c.start(suggestCmd(c.conv))
	case "ctrl+e":
		return c.start(explainCmd(c.conv))
	case "ctrl+y":
		if c.waiting {
			return nil
		}
		c.conv.SetStyle(nextStyle(c.conv.Style()))
		return c.start(openCmd(c.conv))
	case "ctrl+n":
		if c.waiting {
			return nil
		}
		c.conv.Reset()
		return c.start(openCmd(c.conv))
	case "tab":
		if opts := c.options(); len(opts) > 0 {
			c.input.SetValue(opts[c.pick%len(opts)])
			c.pick++
		}
		return nil
	case "pgup", "ctrl+up":
		c.scroll += 3
		return nil
	case "pgdown", "ctrl+down":
		c.scroll = max(c.scroll-3, 0)
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// start runs a tutor turn unless one is in flight or there is nothing to
// talk about.
func (c *ChatScreen) start(cmd tea.Cmd) tea.Cmd {
	if c.waiting {
		return nil
	}
	if !c.conv.HasVocab() {
		c.notice = tutor.ErrNoVocab.Error()
		return nil
	}
	c.waiting = true
	c.notice = ""
	return cmd
}

// options returns the fix and suggested replies of the last tutor reply.
func (c *ChatScreen) options() []string {
	msgs := c.conv.Messages()
	last, ok := lastAssistant(msgs)
	if !ok {
		return nil
	}
	var out []string
	if last.SuggestedFix != "" {
		out = append(out, last.SuggestedFix)
	}
	return append(out, last.SuggestedReplies...)
}

func lastAssistant(msgs []tutor.Message) (tutor.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleAssistant {
			return msgs[i], !msgs[i].Err
		}
	}
	return tutor.Message{}, false
}

func nextStyle(s tutor.Style) tutor.Style {
	i := slices.Index(tutor.Styles, s)
	return tutor.Styles[(i+1)%len(tutor.Styles)]
}
