package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedProvider spaces out calls so a chatty learner does not run
// into provider quotas.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps p with a token bucket. A non-positive rate disables
// throttling and returns p unchanged.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerMinute <= 0 {
		return p
	}
	burst := max(cfg.Burst, 1)
	return &RateLimitedProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60), burst),
	}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string {
	return r.inner.ModelID()
}
