package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and tunes the chat model.
type Config struct {
	Provider string

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	Retry     RetryConfig
	RateLimit RateLimitConfig

	// MaxTokens caps each reply.
	MaxTokens int
	// Timeout bounds one chat turn including retries.
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// RateLimitWait is the first wait after a 429 without Retry-After.
	RateLimitWait time.Duration
	// MaxRetryAfter caps a provider supplied Retry-After.
	MaxRetryAfter time.Duration
}

// RateLimitConfig throttles calls on the client side.
type RateLimitConfig struct {
	RequestsPerMinute float64
	Burst             int
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOpenAI,
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts:   3,
			InitialWait:   time.Second,
			MaxWait:       10 * time.Second,
			Multiplier:    2,
			RateLimitWait: 12 * time.Second,
			MaxRetryAfter: 60 * time.Second,
		},
		RateLimit: RateLimitConfig{RequestsPerMinute: 20, Burst: 3},
		MaxTokens: 800,
		Timeout:   90 * time.Second,
	}
}

// DiscoverConfig picks the first provider whose standard API key variable
// is set, checking OpenAI, Anthropic, Gemini and OpenRouter in that order.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Enabled reports whether a provider with credentials is configured.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Validate() == nil
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (llm.%s_api_key)", c.Provider, c.Provider)
	}
	return nil
}
