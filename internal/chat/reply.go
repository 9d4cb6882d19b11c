package chat

import (
	"encoding/json"
	"strings"

	"github.com/abhisek/kartu/internal/llm"
)

// Reply is the structured answer the model returns.
type Reply struct {
	Indonesian            string   `json:"indonesian"`
	English               string   `json:"english"`
	SuggestedReplies      []string `json:"suggestedReplies"`
	SuggestedFix          string   `json:"suggestedFix"`
	TranslationOfLastUser string   `json:"translationOfLastUserMessage"`
	IsHelp                bool     `json:"isHelp"`
	UserMessageLanguage   string   `json:"userMessageLanguage"`
}

// Every field is required and extra fields are rejected so that OpenAI's
// strict structured output accepts the schema.
var replySchema = &llm.Schema{
	Name:        "chat-reply",
	Description: "One turn of the Indonesian practice partner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"indonesian":                   map[string]any{"type": "string"},
			"english":                      map[string]any{"type": "string"},
			"suggestedReplies":             map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"suggestedFix":                 map[string]any{"type": "string"},
			"translationOfLastUserMessage": map[string]any{"type": "string"},
			"isHelp":                       map[string]any{"type": "boolean"},
			"userMessageLanguage":          map[string]any{"type": "string", "enum": []string{"id", "en"}},
		},
		"required": []string{
			"indonesian", "english", "suggestedReplies", "suggestedFix",
			"translationOfLastUserMessage", "isHelp", "userMessageLanguage",
		},
		"additionalProperties": false,
	},
}

// parseReply decodes a reply, tolerating text around the JSON object.
func parseReply(text string) (Reply, bool) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Reply{}, false
	}
	var r Reply
	if err := json.Unmarshal([]byte(text[start:end+1]), &r); err != nil {
		return Reply{}, false
	}
	return r, true
}
