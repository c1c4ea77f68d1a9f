// Package provider implements the model.Provider adapters for each LLM
// backend.
//
// lexarena calls several backends concurrently with the same move prompt, so
// every adapter follows one contract: exactly one HTTP request per Propose
// call, and every ordinary failure mode (timeout, connection error, non-2xx
// status, empty or malformed response body) mapped to a model.RawResult
// status instead of a Go error. Only misconfiguration (a missing API key, an
// unknown provider kind) is an error, and it surfaces at construction time
// in the factory.
//
// Adapters:
//   - provider.OpenAIProvider: official OpenAI Go SDK
//   - provider.AnthropicProvider: official Anthropic Go SDK
//   - provider.OpenRouterProvider: raw HTTP against the OpenAI-compatible
//     OpenRouter endpoint, with envelope normalization (see normalizer.go)
//   - provider.OllamaProvider: local models via the Ollama API client
package provider

import "time"

// Kind identifies the provider implementation.
type Kind string

const (
	KindOpenAI     Kind = "openai"
	KindAnthropic  Kind = "anthropic"
	KindOpenRouter Kind = "openrouter"
	KindOllama     Kind = "ollama"
)

// Config holds provider-specific configuration for the factory.
type Config struct {
	Kind    Kind
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
	// CandidateID tags every RawResult this client produces.
	CandidateID string
	// HTTPTimeout bounds the raw-HTTP adapters; SDK-backed adapters rely on
	// the call context instead.
	HTTPTimeout time.Duration
}

// MapKind converts a user-facing provider id from configuration to a Kind.
// Unknown ids pass through unchanged; the factory rejects them.
func MapKind(id string) Kind {
	switch id {
	case "openai":
		return KindOpenAI
	case "anthropic":
		return KindAnthropic
	case "openrouter":
		return KindOpenRouter
	case "ollama":
		return KindOllama
	default:
		return Kind(id)
	}
}

// diagnosticLimit caps how much of a response body ends up in diagnostics.
const diagnosticLimit = 400

// clip returns at most diagnosticLimit bytes of s for diagnostics.
func clip(s string) string {
	if len(s) > diagnosticLimit {
		return s[:diagnosticLimit]
	}
	return s
}
