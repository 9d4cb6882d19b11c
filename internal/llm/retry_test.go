package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialWait:   time.Second,
		MaxWait:       3 * time.Second,
		Multiplier:    2.0,
		RateLimitWait: 12 * time.Second,
		MaxRetryAfter: 60 * time.Second,
	}
}

// newTestRetry returns a RetryProvider that records waits instead of sleeping.
func newTestRetry(inner Provider, cfg RetryConfig) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &RetryProvider{
		inner:  inner,
		config: cfg,
		jitter: func() float64 { return 0.5 },
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p, waits := newTestRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != `{"ok":true}` || mock.CallCount() != 1 || len(*waits) != 0 {
		t.Fatalf("resp %s, calls %d, waits %v", resp.Content, mock.CallCount(), *waits)
	}
}

func TestRetry_ExponentialBackoff(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	cfg := retryConfig()
	cfg.MaxAttempts = 4
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Content: json.RawMessage(`{}`)})
	p, waits := newTestRetry(mock, cfg)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Neutral jitter: 1s, 2s, then capped at MaxWait.
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(*waits) != len(want) {
		t.Fatalf("waits = %v, want %v", *waits, want)
	}
	for i := range want {
		if (*waits)[i] != want[i] {
			t.Errorf("wait %d = %s, want %s", i, (*waits)[i], want[i])
		}
	}
}

func TestRetry_Jitter(t *testing.T) {
	r := &RetryProvider{config: retryConfig(), jitter: func() float64 { return 1 }}
	if got := r.backoff(0, errors.New("x")); got != 1200*time.Millisecond {
		t.Errorf("max jitter = %s, want 1.2s", got)
	}
	r.jitter = func() float64 { return 0 }
	if got := r.backoff(0, errors.New("x")); got != 800*time.Millisecond {
		t.Errorf("min jitter = %s, want 800ms", got)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down})
	p, waits := newTestRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 || len(*waits) != 2 {
		t.Fatalf("calls %d, waits %d", mock.CallCount(), len(*waits))
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}}, MockResponse{Content: json.RawMessage(`{}`)})
	p, _ := newTestRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) || mock.CallCount() != 1 {
		t.Fatalf("err %v, calls %d", err, mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	inv := &ErrInvalidResponse{Err: errors.New("bad")}
	mock := NewMockProvider(MockResponse{Err: inv}, MockResponse{Err: inv}, MockResponse{Content: json.RawMessage(`{}`)})
	p, _ := newTestRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var got *ErrInvalidResponse
	if !errors.As(err, &got) || mock.CallCount() != 2 {
		t.Fatalf("err %v, calls %d", err, mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_RateLimitBackoff(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		attempt    int
		want       time.Duration
	}{
		{"honors retry after", 7 * time.Second, 0, 7 * time.Second},
		{"caps retry after", 5 * time.Minute, 0, 60 * time.Second},
		{"default first wait", 0, 0, 12 * time.Second},
		{"default doubles", 0, 1, 24 * time.Second},
		{"default capped", 0, 3, 60 * time.Second},
	}
	r := &RetryProvider{config: retryConfig(), jitter: func() float64 { return 0.5 }}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.backoff(tt.attempt, &ErrRateLimit{RetryAfter: tt.retryAfter})
			if got != tt.want {
				t.Errorf("backoff = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRetry_RateLimitUsesRetryAfter(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 2 * time.Second}}, MockResponse{Content: json.RawMessage(`{}`)})
	p, waits := newTestRetry(mock, retryConfig())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*waits) != 1 || (*waits)[0] != 2*time.Second {
		t.Fatalf("waits = %v", *waits)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{" 1.5 ", 1500 * time.Millisecond},
		{"0", 0},
		{"-3", 0},
		{"Sun, 01 Mar 2026 12:00:30 GMT", 30 * time.Second},
		{"Sun, 01 Mar 2026 11:59:00 GMT", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.in, now); got != tt.want {
			t.Errorf("ParseRetryAfter(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if got := WithRetry(NewMockProvider(), retryConfig()).ModelID(); got != "mock" {
		t.Fatalf("model = %q", got)
	}
}
