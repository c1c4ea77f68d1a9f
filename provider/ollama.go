package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// OllamaProvider implements model.Provider against a local Ollama server.
// No API key is involved; reachability problems surface as http_error.
type OllamaProvider struct {
	client      *api.Client
	model       string
	candidateID string
}

// NewOllamaProvider creates a new Ollama provider instance.
// Returns an error if the base URL does not parse.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	mdl := cfg.Model
	if mdl == "" {
		mdl = "llama3.1:latest"
	}
	return &OllamaProvider{
		client:      api.NewClient(parsed, http.DefaultClient),
		model:       mdl,
		candidateID: cfg.CandidateID,
	}, nil
}

// Propose implements model.Provider.
func (p *OllamaProvider) Propose(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
	result := model.RawResult{CandidateID: p.candidateID}

	msgs := make([]api.Message, len(messages))
	for i, m := range messages {
		msgs[i] = api.Message{Role: m.Role, Content: m.Content}
	}
	stream := false
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: msgs,
		Stream:   &stream,
	}
	if maxTokens > 0 {
		req.Options = map[string]any{"num_predict": maxTokens}
	}

	start := time.Now()
	log.Debug().
		Str("provider", "ollama").
		Str("model", p.model).
		Int("max_tokens", maxTokens).
		Msg("calling model")

	var content string
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Status = model.RawTimeout
			result.Diagnostic = fmt.Sprintf("timeout after %s", time.Since(start).Round(time.Millisecond))
			log.Warn().Str("model", p.model).Dur("elapsed", time.Since(start)).Msg("ollama call timed out")
			return result
		}
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("request failed: %v", err)
		log.Warn().Err(err).Str("model", p.model).Msg("ollama call failed")
		return result
	}

	if strings.TrimSpace(content) == "" {
		result.Status = model.RawEmpty
		result.Diagnostic = "model returned empty content"
		return result
	}

	log.Debug().
		Str("model", p.model).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(content)).
		Msg("ollama response")

	result.Status = model.RawOK
	result.Text = content
	return result
}

// Kind implements model.Provider.
func (p *OllamaProvider) Kind() string { return string(KindOllama) }

// Model implements model.Provider.
func (p *OllamaProvider) Model() string { return p.model }
