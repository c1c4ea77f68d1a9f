package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"lexarena/model"
)

// FallbackMaxOutputTokens bounds the extractor's own response; move
// extraction never needs a long answer.
const FallbackMaxOutputTokens = 1200

// LLMExtractor implements Extractor with a single-purpose call to a
// secondary model. The heavy lifting of transport failures and the
// family-aware token parameter lives in the provider adapter; this type only
// renders the extraction prompt and decodes the strict-JSON answer.
type LLMExtractor struct {
	Provider model.Provider
	// MaxOutputTokens caps the extraction response; zero means
	// FallbackMaxOutputTokens.
	MaxOutputTokens int
}

// extractionJSON is the schema the extractor model must answer with.
type extractionJSON struct {
	HasMove       bool            `json:"has_move"`
	ExtractedMove json.RawMessage `json:"extracted_move"`
	Analysis      string          `json:"analysis"`
}

const extractionPromptLimit = 2000

// Extract implements Extractor.
func (e *LLMExtractor) Extract(ctx context.Context, rawText string) (Extraction, error) {
	snippet := strings.TrimSpace(rawText)
	if len([]rune(snippet)) > extractionPromptLimit {
		snippet = string([]rune(snippet)[:extractionPromptLimit])
	}

	prompt := "You are assisting a word-game referee system. A model responded with the " +
		"following text instead of a clean JSON move description:\n\n" +
		snippet + "\n\n" +
		"Analyse this response and reply STRICTLY with JSON matching this schema:\n" +
		"{\n" +
		"  \"has_move\": boolean,\n" +
		"  \"extracted_move\": object | null,\n" +
		"  \"analysis\": string\n" +
		"}\n" +
		"If you find a move, return it as `extracted_move` with placements " +
		"(row, col, letter), direction (ACROSS or DOWN), and word. If no move is " +
		"present, set `has_move` to false and explain why in `analysis`. " +
		"Do not include any extra text."

	budget := e.MaxOutputTokens
	if budget <= 0 || budget > FallbackMaxOutputTokens {
		budget = FallbackMaxOutputTokens
	}

	res := e.Provider.Propose(ctx, []model.Message{{Role: "user", Content: prompt}}, budget)
	if res.Status != model.RawOK {
		return Extraction{}, fmt.Errorf("extractor call failed: %s (%s)", res.Status, res.Diagnostic)
	}

	var payload extractionJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(res.Text)), &payload); err != nil {
		log.Warn().Err(err).Str("prefix", prefix(res.Text, 200)).Msg("extractor returned non-JSON")
		return Extraction{}, fmt.Errorf("extractor returned non-JSON: %w", err)
	}

	out := Extraction{HasMove: payload.HasMove, Analysis: strings.TrimSpace(payload.Analysis)}
	if !payload.HasMove || len(payload.ExtractedMove) == 0 || string(payload.ExtractedMove) == "null" {
		return out, nil
	}

	// extracted_move arrives as an object or, from sloppier models, as a
	// JSON string holding an object.
	moveData := payload.ExtractedMove
	var asString string
	if err := json.Unmarshal(moveData, &asString); err == nil {
		moveData = json.RawMessage(asString)
	}

	mv, err := UnmarshalMove(moveData)
	if err != nil {
		return Extraction{}, fmt.Errorf("extracted move rejected: %w", err)
	}
	out.Move = mv
	return out, nil
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
