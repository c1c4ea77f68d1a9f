package model

import "context"

// Provider abstracts one LLM backend (OpenAI, Anthropic, OpenRouter, Ollama).
//
// This interface lives in the model package rather than the provider package
// so that provider implementations can import model without creating an
// import cycle with the packages that consume them.
//
// Propose sends one chat-style request and returns a normalized RawResult.
// Ordinary failures (timeouts, connection errors, non-2xx responses,
// malformed response bodies) are mapped to a RawResult status and never
// surface as a Go error from the call itself. Only misconfiguration (missing
// API key, unknown provider kind) is reported as an error, and that happens
// at construction time in the factory, not here.
type Provider interface {
	// Propose sends the rendered prompt and returns the raw text result.
	Propose(ctx context.Context, messages []Message, maxTokens int) RawResult

	// Kind returns the provider kind identifier ("openai", "anthropic", ...).
	Kind() string

	// Model returns the model identifier used for API calls.
	Model() string
}

// RawStatus classifies the outcome of a single provider call before any
// move parsing happens.
type RawStatus string

const (
	RawOK                RawStatus = "ok"
	RawEmpty             RawStatus = "empty"
	RawMalformedEnvelope RawStatus = "malformed_envelope"
	RawHTTPError         RawStatus = "http_error"
	RawTimeout           RawStatus = "timeout"
)

// RawResult is the normalized outcome of one provider call: either usable
// text, or a typed failure with a diagnostic. One RawResult is produced per
// candidate per orchestration call.
type RawResult struct {
	CandidateID string
	Status      RawStatus
	Text        string
	// Diagnostic carries the HTTP status, a body prefix, or the envelope
	// field the content was recovered from. Display-only.
	Diagnostic string
}
