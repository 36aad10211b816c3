package service

import (
	"fmt"

	"golang.org/x/time/rate"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/core/config"
	"radbytes.org/pulse/internal/feedback"
)

// NewFeedbackClients returns a factory for per-run completers. Every client built by
// the factory for a given config shares one rate limiter, so concurrent runs pace
// against the same provider budget. A non-empty credential replaces the configured key.
func NewFeedbackClients(analysis, categorizer config.LLMConfig) feedback.ClientFactory {
	analysisLimiter := llm.NewLimiter(analysis.RequestsPerSecond, analysis.Burst)
	categorizerLimiter := llm.NewLimiter(categorizer.RequestsPerSecond, categorizer.Burst)

	return func(credential string) (feedback.Clients, error) {
		analysisClient, err := newLimitedClient(analysis, credential, analysisLimiter)
		if err != nil {
			return feedback.Clients{}, fmt.Errorf("analysis llm: %w", err)
		}
		categorizerClient, err := newLimitedClient(categorizer, credential, categorizerLimiter)
		if err != nil {
			return feedback.Clients{}, fmt.Errorf("categorizer llm: %w", err)
		}
		return feedback.Clients{
			Analysis:    analysisClient,
			Categorizer: categorizerClient,
		}, nil
	}
}

// NewChatModel builds the conversational client, or nil when no key is configured.
func NewChatModel(cfg config.LLMConfig) (ChatModel, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := newLimitedClient(cfg, "", llm.NewLimiter(cfg.RequestsPerSecond, cfg.Burst))
	if err != nil {
		return nil, fmt.Errorf("chat llm: %w", err)
	}
	return client, nil
}

func newLimitedClient(cfg config.LLMConfig, credential string, limiter *rate.Limiter) (llm.Client, error) {
	key := cfg.APIKey
	if credential != "" {
		key = credential
	}
	client, err := llm.New(llm.Config{
		APIKey:      key,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		CallTimeout: cfg.CallTimeout,
	})
	if err != nil {
		return nil, err
	}
	return llm.WithRateLimit(client, limiter), nil
}
