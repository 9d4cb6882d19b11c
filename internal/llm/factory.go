package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/kartu/internal/store"
)

// NewProvider builds the configured provider wrapped in its middleware:
// caller → rate limit → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logrus.Entry) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithRateLimit(retried, cfg.RateLimit), nil
}
