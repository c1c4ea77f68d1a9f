package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// AnthropicProvider implements model.Provider using Anthropic's official Go SDK.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       anthropic.Model
	candidateID string
}

// NewAnthropicProvider creates a new Anthropic provider instance.
// Returns an error if the API key is missing.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	mdl := anthropic.Model(cfg.Model)
	if cfg.Model == "" {
		mdl = anthropic.ModelClaudeSonnet4_5_20250929
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicProvider{
		client:      &client,
		model:       mdl,
		candidateID: cfg.CandidateID,
	}, nil
}

// Propose implements model.Provider.
func (p *AnthropicProvider) Propose(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
	result := model.RawResult{CandidateID: p.candidateID}

	anthropicMsgs, system := toAnthropicMessages(messages)
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  anthropicMsgs,
		MaxTokens: int64(maxTokens),
	}
	if len(system) > 0 {
		params.System = system
	}

	start := time.Now()
	log.Debug().
		Str("provider", "anthropic").
		Str("model", string(p.model)).
		Int("max_tokens", maxTokens).
		Msg("calling model")

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.Status = model.RawTimeout
			result.Diagnostic = fmt.Sprintf("timeout after %s", time.Since(start).Round(time.Millisecond))
			log.Warn().Str("model", string(p.model)).Dur("elapsed", time.Since(start)).Msg("anthropic call timed out")
			return result
		}
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			result.Status = model.RawHTTPError
			result.Diagnostic = fmt.Sprintf("HTTP %d: %s", apierr.StatusCode, clip(apierr.Error()))
			log.Warn().Int("status", apierr.StatusCode).Str("model", string(p.model)).Msg("anthropic API error")
			return result
		}
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("request failed: %v", err)
		log.Warn().Err(err).Str("model", string(p.model)).Msg("anthropic call failed")
		return result
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	content := sb.String()
	if strings.TrimSpace(content) == "" {
		result.Status = model.RawEmpty
		result.Diagnostic = fmt.Sprintf("no text blocks in response, stop_reason=%s", msg.StopReason)
		return result
	}

	log.Debug().
		Str("model", string(p.model)).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(content)).
		Msg("anthropic response")

	result.Status = model.RawOK
	result.Text = content
	return result
}

// Kind implements model.Provider.
func (p *AnthropicProvider) Kind() string { return string(KindAnthropic) }

// Model implements model.Provider.
func (p *AnthropicProvider) Model() string { return string(p.model) }

// toAnthropicMessages converts lexarena messages to Anthropic format.
// System messages go to the separate system parameter, not the messages array.
func toAnthropicMessages(messages []model.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var system []anthropic.TextBlockParam
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case "assistant":
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out, system
}
