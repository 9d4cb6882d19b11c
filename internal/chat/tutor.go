// Package chat runs the practice conversation with a language model tutor
// that stays within the learner's active modules.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/logging"
)

// MaxHistory is how many earlier messages are sent with each turn.
const MaxHistory = 30

var (
	// ErrNoVocab is returned when no module is active.
	ErrNoVocab = errors.New("select at least one module to start chatting")
	// ErrBusy is returned when a turn is already in flight.
	ErrBusy = errors.New("a reply is already on its way")
)

// Message is one bubble of the conversation.
type Message struct {
	Role    llm.Role
	Content string

	// Translation is the English of an assistant reply, or the translation
	// of a learner message once the model has answered it.
	Translation string
	// Language of a learner message: "id" or "en".
	Language string

	SuggestedReplies []string
	SuggestedFix     string
	IsHelp           bool
	// ShowSuggestions is set on replies to a suggestion request.
	ShowSuggestions bool
	// HideTranslation is set on canned learner turns.
	HideTranslation bool
	// Err marks an error shown in place of a reply.
	Err bool
}

// Tutor holds one conversation. It is safe for concurrent use; turns are
// serialized.
type Tutor struct {
	provider llm.Provider
	log      *logrus.Entry

	maxTokens int
	timeout   time.Duration
	sessionID string

	mu       sync.Mutex
	busy     bool
	style    Style
	vocab    string
	modules  []string
	messages []Message
}

type Option func(*Tutor)

func WithStyle(s Style) Option { return func(t *Tutor) { t.style = s } }

func WithLogger(l *logrus.Entry) Option { return func(t *Tutor) { t.log = l } }

func WithMaxTokens(n int) Option { return func(t *Tutor) { t.maxTokens = n } }

// WithTimeout bounds one turn including provider retries.
func WithTimeout(d time.Duration) Option { return func(t *Tutor) { t.timeout = d } }

// WithSessionID tags the tutor's requests in the event log.
func WithSessionID(id string) Option { return func(t *Tutor) { t.sessionID = id } }

func New(p llm.Provider, opts ...Option) *Tutor {
	t := &Tutor{
		provider:  p,
		style:     StyleCasual,
		maxTokens: 800,
		timeout:   90 * time.Second,
	}
	for _, o := range opts {
		o(t)
	}
	if t.log == nil {
		t.log = logging.Component(nil, "chat")
	}
	return t
}

// SetScope sets the vocabulary and module names the tutor works within.
// The conversation is kept.
func (t *Tutor) SetScope(vocab []VocabEntry, modules []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vocab = FormatVocab(vocab)
	t.modules = append([]string(nil), modules...)
}

// SetStyle switches the texting style and starts a new conversation.
func (t *Tutor) SetStyle(s Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.style == s {
		return
	}
	t.style = s
	t.messages = nil
}

func (t *Tutor) Style() Style {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.style
}

// HasVocab reports whether a scope with vocabulary is set.
func (t *Tutor) HasVocab() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.vocab != ""
}

// Busy reports whether a turn is in flight.
func (t *Tutor) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Messages returns a copy of the conversation.
func (t *Tutor) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.messages...)
}

// Reset clears the conversation.
func (t *Tutor) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}

// Open asks the model for a greeting that starts a fresh conversation.
func (t *Tutor) Open(ctx context.Context) (Message, error) {
	t.mu.Lock()
	if t.vocab == "" {
		t.mu.Unlock()
		return Message{}, ErrNoVocab
	}
	if t.busy {
		t.mu.Unlock()
		return Message{}, ErrBusy
	}
	t.busy = true
	t.messages = nil
	req := t.request([]llm.Message{{Role: llm.RoleUser, Content: OpeningPrompt}})
	t.mu.Unlock()

	reply, raw, err := t.generate(llm.WithPurpose(ctx, "chat-opening"), req)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	msg := t.assistantMessage(reply, raw, err, false)
	t.messages = append(t.messages, msg)
	return msg, err
}

// Send delivers a learner message and returns the tutor's answer. Provider
// failures come back as an error message that is also kept in the
// conversation.
func (t *Tutor) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, errors.New("empty message")
	}

	t.mu.Lock()
	if t.vocab == "" {
		t.mu.Unlock()
		return Message{}, ErrNoVocab
	}
	if t.busy {
		t.mu.Unlock()
		return Message{}, ErrBusy
	}
	t.busy = true

	history := t.messages
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	turns := lo.FilterMap(history, func(m Message, _ int) (llm.Message, bool) {
		return llm.Message{Role: m.Role, Content: m.Content}, !m.Err
	})
	turns = append(turns, llm.Message{Role: llm.RoleUser, Content: text})
	req := t.request(turns)

	t.messages = append(t.messages, Message{
		Role:            llm.RoleUser,
		Content:         text,
		HideTranslation: text == SuggestPrompt || text == ExplainPrompt,
	})
	userIdx := len(t.messages) - 1
	t.mu.Unlock()

	reply, raw, err := t.generate(llm.WithPurpose(ctx, "chat"), req)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false

	msg := t.assistantMessage(reply, raw, err, text == SuggestPrompt)

	// Reset or SetStyle may have dropped the conversation meanwhile.
	if userIdx >= len(t.messages) || t.messages[userIdx].Content != text {
		return msg, err
	}
	if err == nil {
		user := &t.messages[userIdx]
		user.Language = "id"
		if reply != nil {
			user.Translation = reply.TranslationOfLastUser
			if reply.UserMessageLanguage == "en" {
				user.Language = "en"
			}
		}
	}
	t.messages = append(t.messages, msg)
	return msg, err
}

// Suggest asks for suggested replies.
func (t *Tutor) Suggest(ctx context.Context) (Message, error) {
	return t.Send(ctx, SuggestPrompt)
}

// Explain asks for a word by word breakdown of the last reply.
func (t *Tutor) Explain(ctx context.Context) (Message, error) {
	return t.Send(ctx, ExplainPrompt)
}

// request must be called with t.mu held.
func (t *Tutor) request(turns []llm.Message) llm.Request {
	return llm.Request{
		System:      SystemPrompt(t.vocab, t.style, t.modules),
		Messages:    turns,
		Schema:      replySchema,
		MaxTokens:   t.maxTokens,
		Temperature: 0.7,
	}
}

func (t *Tutor) generate(ctx context.Context, req llm.Request) (*Reply, string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	if t.sessionID != "" {
		ctx = llm.WithSessionID(ctx, t.sessionID)
	}

	resp, err := t.provider.Generate(ctx, req)
	if err != nil {
		t.log.WithError(err).Warn("chat turn failed")
		return nil, "", err
	}
	raw := resp.Text()
	reply, ok := parseReply(raw)
	if !ok {
		t.log.WithField("reply", raw).Debug("unstructured chat reply")
		return nil, raw, nil
	}
	return &reply, raw, nil
}

func (t *Tutor) assistantMessage(reply *Reply, raw string, err error, suggestions bool) Message {
	switch {
	case err != nil:
		return Message{Role: llm.RoleAssistant, Content: "Error: " + userFacingError(err), IsHelp: true, Err: true}
	case reply == nil:
		if raw == "" {
			raw = "(No response)"
		}
		return Message{Role: llm.RoleAssistant, Content: raw, ShowSuggestions: suggestions}
	}

	content := reply.Indonesian
	if reply.IsHelp || content == "" {
		content = reply.English
	}
	return Message{
		Role:             llm.RoleAssistant,
		Content:          content,
		Translation:      reply.English,
		SuggestedReplies: reply.SuggestedReplies,
		SuggestedFix:     strings.TrimSpace(reply.SuggestedFix),
		IsHelp:           reply.IsHelp,
		ShowSuggestions:  suggestions,
	}
}

func userFacingError(err error) string {
	var rl *llm.ErrRateLimit
	switch {
	case errors.As(err, &rl):
		return "Too many requests. Please wait a minute and try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The tutor took too long to answer. Try again."
	}
	return err.Error()
}
