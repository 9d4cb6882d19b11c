// Package llm talks to hosted language models for the chat tutor.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a model and returns its reply.
type Provider interface {
	// Generate runs req. When req.Schema is set the reply is JSON that has
	// been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Request is a single model call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the provider for structured output. Without it the reply
	// is plain text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured replies.
type Schema struct {
	// Name is kebab-case, e.g. "chat-reply".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a model reply.
type Response struct {
	// Content is the validated JSON when a schema was requested, otherwise
	// the raw reply text.
	Content json.RawMessage
	Usage   Usage
	Model   string
	// StopReason is one of "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
