package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_ReturnsScriptedReplies(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		Reply(map[string]string{"indonesian": "Halo"}),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text() != `{"a":1}` {
		t.Fatalf("content = %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 || resp1.StopReason != "end" {
		t.Fatalf("unexpected response %+v", resp1)
	}

	resp2, err := mock.Generate(context.Background(), Request{Schema: replySchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != `{"indonesian":"Halo"}` {
		t.Fatalf("content = %s", resp2.Content)
	}
}

func TestMockProvider_EmptyScript(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(Reply(map[string]string{"english": "Hello"}))
	_, err := mock.Generate(context.Background(), Request{Schema: replySchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider()
	mock.Push(MockResponse{Content: json.RawMessage(`{}`)}, MockResponse{Err: errors.New("boom")})

	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}
	_, _ = mock.Generate(context.Background(), req)
	_, err := mock.Generate(context.Background(), req)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected scripted error, got %v", err)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
	calls := mock.Calls()
	if calls[0].System != "sys" || calls[0].Messages[0].Content != "hello" {
		t.Errorf("recorded request = %+v", calls[0])
	}
	if mock.ModelID() != "mock" {
		t.Errorf("model = %q", mock.ModelID())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if PurposeFrom(ctx) != "unknown" {
		t.Errorf("default purpose = %q", PurposeFrom(ctx))
	}
	if SessionIDFrom(ctx) != "" {
		t.Errorf("default session = %q", SessionIDFrom(ctx))
	}

	ctx = WithSessionID(WithPurpose(ctx, "chat"), "s-1")
	if PurposeFrom(ctx) != "chat" || SessionIDFrom(ctx) != "s-1" {
		t.Errorf("got purpose %q session %q", PurposeFrom(ctx), SessionIDFrom(ctx))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"openai with key", func(c *Config) { c.OpenAI.APIKey = "sk" }, ""},
		{"openai without key", func(c *Config) {}, "llm.openai_api_key"},
		{"anthropic without key", func(c *Config) { c.Provider = ProviderAnthropic }, "llm.anthropic_api_key"},
		{"gemini with key", func(c *Config) { c.Provider = ProviderGemini; c.Gemini.APIKey = "g" }, ""},
		{"openrouter without key", func(c *Config) { c.Provider = ProviderOpenRouter }, "llm.openrouter_api_key"},
		{"mock", func(c *Config) { c.Provider = ProviderMock }, ""},
		{"unknown", func(c *Config) { c.Provider = "bard" }, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !cfg.Enabled() {
					t.Error("expected Enabled")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
			if cfg.Enabled() {
				t.Error("expected not Enabled")
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENROUTER_API_KEY", "or")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g" {
		t.Fatalf("got %+v, %v", cfg, ok)
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("provider = %q, want anthropic", cfg.Provider)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error without API key")
	}

	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RateLimitedProvider); !ok {
		t.Errorf("outer provider = %T, want *RateLimitedProvider", p)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestModels(t *testing.T) {
	if got := Models(ProviderAnthropic); len(got) != 2 || got[0] != "claude-haiku" {
		t.Errorf("anthropic models = %v", got)
	}
	if Models(ProviderOpenRouter) != nil {
		t.Error("openrouter has no aliases")
	}
	if c := LookupCost("gpt-4o-mini"); c == nil || c.Cost(1_000_000, 0) != 0.15 {
		t.Errorf("gpt-4o-mini cost = %+v", c)
	}
	if LookupCost("nope") != nil {
		t.Error("unknown model has a cost")
	}
}
