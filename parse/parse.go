// Package parse recovers a structured move from a model's free-form
// response.
//
// Models are asked for pure JSON but rarely oblige: some wrap the JSON in a
// markdown fence, some reason at length before (or instead of) answering,
// and some bury the move inside prose. The parser runs an ordered strategy
// list and records which tier succeeded:
//
//  1. direct: strip a single surrounding code fence and parse as JSON
//  2. markdown_extraction: scan for fenced blocks anywhere in the text and
//     parse the first block that yields a valid move
//  3. llm_fallback: ask a small single-purpose model to read the text and
//     either extract a move or report that none is present
//
// Tier 3 only runs when the text is long enough to plausibly contain a move
// (Parser.FallbackMinChars); short garbage fails fast without spending an
// extra model call.
package parse

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"lexarena/model"
)

// DefaultFallbackMinChars is the minimum raw-text length before the LLM
// fallback tier is considered. The cutoff is heuristic; override it via
// Parser.FallbackMinChars.
const DefaultFallbackMinChars = 32

// Extractor is the tier-3 collaborator: a single-purpose LLM call that reads
// ambiguous text and either extracts a move or reports none is present.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (Extraction, error)
}

// Extraction is the fallback extractor's answer.
type Extraction struct {
	HasMove  bool
	Move     *model.ParsedMove
	Analysis string
}

// Parser converts raw model output into a ParsedMove.
type Parser struct {
	// Extractor enables the llm_fallback tier; nil disables it.
	Extractor Extractor
	// FallbackMinChars gates the fallback tier; zero means
	// DefaultFallbackMinChars.
	FallbackMinChars int
}

// Error reports a terminal parse failure: every applicable tier was
// attempted and the diagnostic explains why each one failed.
type Error struct {
	Attempts []string
}

func (e *Error) Error() string {
	return "move parsing failed: " + strings.Join(e.Attempts, "; ")
}

// Parse runs the tiers in order. Empty or whitespace-only input
// short-circuits immediately without attempting any tier.
func (p *Parser) Parse(ctx context.Context, text string) (*model.ParsedMove, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Attempts: []string{"input empty or whitespace-only"}}
	}

	var attempts []string

	if mv, err := parseDirect(text); err == nil {
		mv.Method = model.ParseDirect
		return mv, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("direct: %v", err))
	}

	if mv, err := parseMarkdown(text); err == nil {
		mv.Method = model.ParseMarkdown
		return mv, nil
	} else {
		attempts = append(attempts, fmt.Sprintf("markdown_extraction: %v", err))
	}

	minChars := p.FallbackMinChars
	if minChars == 0 {
		minChars = DefaultFallbackMinChars
	}
	if p.Extractor == nil {
		attempts = append(attempts, "llm_fallback: no extractor configured")
		return nil, &Error{Attempts: attempts}
	}
	if len([]rune(strings.TrimSpace(text))) < minChars {
		attempts = append(attempts, fmt.Sprintf("llm_fallback: skipped, text shorter than %d chars", minChars))
		return nil, &Error{Attempts: attempts}
	}

	extraction, err := p.Extractor.Extract(ctx, text)
	if err != nil {
		attempts = append(attempts, fmt.Sprintf("llm_fallback: %v", err))
		return nil, &Error{Attempts: attempts}
	}
	if !extraction.HasMove || extraction.Move == nil {
		reason := extraction.Analysis
		if reason == "" {
			reason = "extractor found no move"
		}
		attempts = append(attempts, "llm_fallback: "+reason)
		return nil, &Error{Attempts: attempts}
	}

	mv := extraction.Move
	mv.Method = model.ParseLLMFallback
	mv.FallbackAnalysis = extraction.Analysis
	if err := mv.Validate(); err != nil {
		attempts = append(attempts, fmt.Sprintf("llm_fallback: extracted move invalid: %v", err))
		return nil, &Error{Attempts: attempts}
	}
	return mv, nil
}

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// parseDirect strips reasoning tags and one surrounding code fence, then
// parses the remainder as JSON against the move schema.
func parseDirect(text string) (*model.ParsedMove, error) {
	cleaned := strings.TrimSpace(thinkBlockRe.ReplaceAllString(text, ""))
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	return UnmarshalMove([]byte(cleaned))
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9]*)?\\s*\n?(.*?)```")

// parseMarkdown searches the full text for fenced code blocks, with or
// without a language tag, and parses each in order. The first block that
// yields a valid move wins; later blocks are never inspected.
func parseMarkdown(text string) (*model.ParsedMove, error) {
	matches := fencedBlockRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no fenced code blocks found")
	}
	var lastErr error
	for _, m := range matches {
		mv, err := UnmarshalMove([]byte(strings.TrimSpace(m[1])))
		if err == nil {
			return mv, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no fenced block parsed as a move: %w", lastErr)
}
