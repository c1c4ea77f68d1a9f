package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// DefaultJudgeModel balances verdict quality against latency and cost; word
// validation does not need a frontier model.
const DefaultJudgeModel = "gpt-4o-mini"

// DefaultJudgeMaxOutputTokens bounds the verdict response.
const DefaultJudgeMaxOutputTokens = 800

// OpenAIJudge validates words with a referee model over the OpenAI API.
type OpenAIJudge struct {
	client          openai.Client
	model           string
	maxOutputTokens int
}

// NewOpenAIJudge creates a judge. Returns an error if the API key is missing.
func NewOpenAIJudge(apiKey, judgeModel string, maxOutputTokens int) (*OpenAIJudge, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("judge API key is required")
	}
	if judgeModel == "" {
		judgeModel = DefaultJudgeModel
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultJudgeMaxOutputTokens
	}
	return &OpenAIJudge{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		model:           judgeModel,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

// verdictJSON is the strict response schema the referee model answers with.
type verdictJSON struct {
	Results  []model.WordReason `json:"results"`
	AllValid bool               `json:"all_valid"`
}

// Validate implements Judge.
func (j *OpenAIJudge) Validate(ctx context.Context, words []string, language string) (model.Verdict, error) {
	if len(words) == 0 {
		return model.Verdict{AllValid: true}, nil
	}

	sysPrompt := fmt.Sprintf(
		"You are a strict Scrabble referee for %s words. Reply with JSON only. "+
			"Use the official Scrabble lexicon as primary evidence, and consider "+
			"attested usage in real sentences when judging legality. Respond with "+
			"exactly this schema: {\"results\": [{\"word\": string, \"valid\": "+
			"boolean, \"reason\": string}], \"all_valid\": boolean}.",
		language)
	userPrompt := fmt.Sprintf("Validate these words for %s play: %s. Return JSON exactly matching the schema.",
		language, strings.Join(words, ", "))

	log.Debug().Strs("words", words).Str("language", language).Msg("judging words")

	completion, err := j.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(sysPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:     openai.ChatModel(j.model),
		MaxTokens: openai.Int(int64(j.maxOutputTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("judge call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return model.Verdict{}, fmt.Errorf("judge returned no choices")
	}

	var raw verdictJSON
	content := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return model.Verdict{}, fmt.Errorf("judge returned non-JSON verdict: %w", err)
	}

	verdict := model.Verdict{AllValid: raw.AllValid, Words: raw.Results}
	// Trust the per-word flags over the aggregate in case the model
	// contradicts itself.
	for _, w := range verdict.Words {
		if !w.Valid {
			verdict.AllValid = false
			break
		}
	}

	log.Debug().Bool("all_valid", verdict.AllValid).Int("words", len(verdict.Words)).Msg("judge verdict")
	return verdict, nil
}
