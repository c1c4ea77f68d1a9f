package provider

import (
	"fmt"

	"lexarena/model"
)

// New creates a provider based on configuration.
//
// This is the centralized factory for every provider kind. Construction is
// the only place a provider returns an error: a created client maps all of
// its call-time failures to RawResult statuses.
func New(cfg Config) (model.Provider, error) {
	switch cfg.Kind {
	case KindOpenAI:
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindAnthropic:
		p, err := NewAnthropicProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindOpenRouter:
		p, err := NewOpenRouterProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindOllama:
		p, err := NewOllamaProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", cfg.Kind)
	}
}
