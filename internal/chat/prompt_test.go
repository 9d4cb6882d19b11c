package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/kartu/internal/item"
)

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleSlang, ParseStyle(" Slang "))
	assert.Equal(t, StyleFormal, ParseStyle("formal"))
	assert.Equal(t, StyleCasual, ParseStyle("pirate"))
	assert.Equal(t, "Formal", StyleFormal.Label())
}

func TestVocab(t *testing.T) {
	items := []*item.Item{
		item.New(item.TypeWord, "Greetings", item.RegisterFormal, "halo", "hello"),
		item.New(item.TypeWord, "Greetings", item.RegisterInformal, "Halo", "hi"),
		item.New(item.TypeSentence, "Food", item.RegisterNeutral, "Enak banget!", "So tasty!"),
		item.New(item.TypeWord, "Softeners", item.RegisterNeutral, "deh", "(softener)"),
		item.New(item.TypeSentence, "Plans", item.RegisterNeutral, "Pesan-nya sudah di-kirim.", "The message was sent."),
	}

	got := Vocab(items, []string{"Greetings", "Softeners", "Plans"})
	assert.Equal(t, []VocabEntry{
		{Module: "Greetings", Indo: "halo", English: "hello"},
		{Module: "Softeners", Indo: "deh", English: "(softener)"},
		{Module: "Plans", Indo: "Pesannya sudah dikirim.", English: "The message was sent."},
	}, got)

	assert.Empty(t, Vocab(items, nil))
}

func TestFormatVocab(t *testing.T) {
	got := FormatVocab([]VocabEntry{
		{Module: "Greetings", Indo: "halo", English: "hello"},
		{Module: "Food", Indo: " enak ", English: ""},
		{Module: "Greetings", Indo: "Apa kabar?", English: "How are you?"},
		{Indo: "ya", English: "yes"},
		{Module: "Food", Indo: "", English: "skipped"},
	})
	want := "Module: Greetings\n- halo / hello\n- Apa kabar? / How are you?\n\n" +
		"Module: Food\n- enak / -\n\n" +
		"Module: General\n- ya / yes"
	assert.Equal(t, want, got)
	assert.Empty(t, FormatVocab(nil))
}

func TestSystemPrompt(t *testing.T) {
	vocab := "Module: Greetings\n- halo / hello"

	casual := SystemPrompt(vocab, StyleCasual, []string{"Greetings"})
	assert.Contains(t, casual, "everyday casual Indonesian")
	assert.Contains(t, casual, "only these modules: Greetings")
	assert.Contains(t, casual, "You are in CASUAL mode")
	assert.Contains(t, casual, "VOCABULARY:\n"+vocab)
	assert.NotContains(t, casual, "[MODE:")

	slang := SystemPrompt(vocab, StyleSlang, nil)
	assert.Contains(t, slang, "[MODE: SUPER SLANG")
	assert.NotContains(t, slang, "SCOPE:")

	formal := SystemPrompt("", StyleFormal, nil)
	assert.Contains(t, formal, "[MODE: FORMAL")
	assert.Contains(t, formal, "(No vocabulary loaded.)")
}

func TestParseReply(t *testing.T) {
	r, ok := parseReply("Sure!\n```json\n{\"indonesian\":\"Halo\",\"english\":\"Hi\",\"isHelp\":false}\n```")
	assert.True(t, ok)
	assert.Equal(t, "Halo", r.Indonesian)
	assert.Equal(t, "Hi", r.English)

	_, ok = parseReply("no json here")
	assert.False(t, ok)
	_, ok = parseReply("{broken")
	assert.False(t, ok)
}
