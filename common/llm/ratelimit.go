package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// NewLimiter builds a token bucket shared by every client that talks to the same
// provider account. A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

type rateLimitedClient struct {
	Client
	limiter *rate.Limiter
}

// WithRateLimit wraps a Client so each call first waits on the limiter.
func WithRateLimit(c Client, limiter *rate.Limiter) Client {
	if limiter == nil {
		return c
	}
	return &rateLimitedClient{Client: c, limiter: limiter}
}

func (c *rateLimitedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	return c.Client.Complete(ctx, prompt)
}

func (c *rateLimitedClient) Chat(ctx context.Context, req Request, result any) (*Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.Client.Chat(ctx, req, result)
}

func (c *rateLimitedClient) Converse(ctx context.Context, messages []Message, temperature *float64) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	return c.Client.Converse(ctx, messages, temperature)
}

func (c *rateLimitedClient) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for llm rate limiter: %w", err)
	}
	return nil
}
