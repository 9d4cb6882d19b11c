package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestWithRateLimit_Disabled(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, RateLimitConfig{}); p != Provider(mock) {
		t.Fatalf("expected the provider unchanged, got %T", p)
	}
}

func TestWithRateLimit_Burst(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	// One request per hour: only the burst goes through without waiting.
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 1.0 / 60, Burst: 2})

	for i := range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected the third call to be throttled")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestWithRateLimit_PassesErrors(t *testing.T) {
	boom := errors.New("boom")
	p := WithRateLimit(NewMockProvider(MockResponse{Err: boom}), RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	if _, err := p.Generate(context.Background(), Request{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
