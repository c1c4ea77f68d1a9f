package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// OpenAIProvider implements model.Provider using OpenAI's official Go SDK.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	candidateID string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
// Returns an error if the API key is missing.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	mdl := cfg.Model
	if mdl == "" {
		mdl = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client:      openai.NewClient(opts...),
		model:       mdl,
		candidateID: cfg.CandidateID,
	}, nil
}

// usesCompletionTokenParam reports whether the model family rejects the
// legacy "max_tokens" parameter and requires "max_completion_tokens"
// instead. The reasoning families (o-series, gpt-5) do.
func usesCompletionTokenParam(modelName string) bool {
	m := strings.ToLower(modelName)
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

// Propose implements model.Provider.
func (p *OpenAIProvider) Propose(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
	result := model.RawResult{CandidateID: p.candidateID}

	params := openai.ChatCompletionNewParams{
		Messages: toOpenAIMessages(messages),
		Model:    openai.ChatModel(p.model),
	}
	if maxTokens > 0 {
		if usesCompletionTokenParam(p.model) {
			params.MaxCompletionTokens = openai.Int(int64(maxTokens))
		} else {
			params.MaxTokens = openai.Int(int64(maxTokens))
		}
	}

	start := time.Now()
	log.Debug().
		Str("provider", "openai").
		Str("model", p.model).
		Int("max_tokens", maxTokens).
		Msg("calling model")

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return p.classifyError(ctx, result, err, start)
	}

	if len(completion.Choices) == 0 {
		result.Status = model.RawMalformedEnvelope
		result.Diagnostic = "response has no choices"
		return result
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		result.Status = model.RawEmpty
		result.Diagnostic = fmt.Sprintf("empty content, finish_reason=%s", completion.Choices[0].FinishReason)
		return result
	}

	log.Debug().
		Str("model", p.model).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(content)).
		Msg("openai response")

	result.Status = model.RawOK
	result.Text = content
	return result
}

func (p *OpenAIProvider) classifyError(ctx context.Context, result model.RawResult, err error, start time.Time) model.RawResult {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.Status = model.RawTimeout
		result.Diagnostic = fmt.Sprintf("timeout after %s", time.Since(start).Round(time.Millisecond))
		log.Warn().Str("model", p.model).Dur("elapsed", time.Since(start)).Msg("openai call timed out")
		return result
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		result.Status = model.RawHTTPError
		result.Diagnostic = fmt.Sprintf("HTTP %d: %s", apierr.StatusCode, clip(apierr.Error()))
		log.Warn().Int("status", apierr.StatusCode).Str("model", p.model).Msg("openai API error")
		return result
	}
	result.Status = model.RawHTTPError
	result.Diagnostic = fmt.Sprintf("request failed: %v", err)
	log.Warn().Err(err).Str("model", p.model).Msg("openai call failed")
	return result
}

// Kind implements model.Provider.
func (p *OpenAIProvider) Kind() string { return string(KindOpenAI) }

// Model implements model.Provider.
func (p *OpenAIProvider) Model() string { return p.model }

// toOpenAIMessages converts lexarena messages to OpenAI params.
func toOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, m := range messages {
		switch m.Role {
		case "system":
			out[i] = openai.SystemMessage(m.Content)
		case "assistant":
			out[i] = openai.AssistantMessage(m.Content)
		default:
			out[i] = openai.UserMessage(m.Content)
		}
	}
	return out
}
