package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// OpenRouterProvider calls OpenRouter's OpenAI-compatible chat-completions
// endpoint over raw HTTP. Raw HTTP (rather than the OpenAI SDK) is used here
// because OpenRouter routes to hundreds of heterogeneous models whose
// response envelopes need normalization, see NormalizeEnvelope.
type OpenRouterProvider struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	candidateID string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
// Returns an error if the API key is missing.
func NewOpenRouterProvider(cfg Config) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &OpenRouterProvider{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		candidateID: cfg.CandidateID,
	}, nil
}

type openRouterRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Propose implements model.Provider.
func (p *OpenRouterProvider) Propose(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
	result := model.RawResult{CandidateID: p.candidateID}

	wire := make([]chatMessage, len(messages))
	for i, m := range messages {
		wire[i] = chatMessage{Role: m.Role, Content: m.Content}
	}
	payload, err := json.Marshal(openRouterRequest{
		Model:       p.model,
		Messages:    wire,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("encode request: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("build request: %v", err)
		return result
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	log.Debug().
		Str("provider", "openrouter").
		Str("model", p.model).
		Str("authorization", "***redacted***").
		Int("max_tokens", maxTokens).
		Msg("calling model")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Status = model.RawTimeout
			result.Diagnostic = fmt.Sprintf("timeout after %s", time.Since(start).Round(time.Millisecond))
			log.Warn().Str("model", p.model).Dur("elapsed", time.Since(start)).Msg("openrouter call timed out")
			return result
		}
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("request failed: %v", err)
		log.Warn().Err(err).Str("model", p.model).Msg("openrouter call failed")
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("read body: %v", err)
		return result
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, clip(string(body)))
		log.Warn().Int("status", resp.StatusCode).Str("model", p.model).Msg("openrouter non-2xx response")
		return result
	}

	text, diag, ok := NormalizeEnvelope(body)
	if !ok {
		result.Status = model.RawMalformedEnvelope
		result.Diagnostic = diag
		log.Warn().Str("model", p.model).Str("diagnostic", diag).Msg("malformed openrouter envelope")
		return result
	}
	if text == "" {
		result.Status = model.RawEmpty
		result.Diagnostic = diag
		return result
	}

	log.Debug().
		Str("model", p.model).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(text)).
		Str("source", diag).
		Msg("openrouter response")

	result.Status = model.RawOK
	result.Text = text
	result.Diagnostic = diag
	return result
}

// Kind implements model.Provider.
func (p *OpenRouterProvider) Kind() string { return string(KindOpenRouter) }

// Model implements model.Provider.
func (p *OpenRouterProvider) Model() string { return p.model }
