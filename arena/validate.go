package arena

import (
	"context"

	"github.com/rs/zerolog/log"

	"lexarena/board"
	"lexarena/model"
)

// validate takes a parsed move and finishes the candidate's result: rule
// checks, word extraction, referee verdict, scoring. It fills Status, Score,
// Words, JudgeValid and JudgeReason on result.
//
// A pass is playable with score zero and never reaches the referee. A move
// that breaks placement rules, or forms no word at all, is invalid without a
// referee call. Only a referee failure itself becomes StatusError.
func (c *Coordinator) validate(ctx context.Context, snap model.Snapshot, result *model.CompetitionResult) {
	if result.Move.Pass {
		result.Status = model.StatusOK
		result.JudgeValid = true
		return
	}

	bd, err := board.FromSnapshot(snap)
	if err != nil {
		result.Status = model.StatusError
		result.Diagnostic = err.Error()
		return
	}

	placements, err := bd.CheckPlacements(result.Move.Placements, snap.Rack)
	if err != nil {
		result.Status = model.StatusInvalid
		result.JudgeReason = err.Error()
		return
	}

	bd.PlaceLetters(placements)
	words := bd.WordsForMove(placements)
	if len(words) == 0 {
		result.Status = model.StatusInvalid
		result.JudgeReason = "move forms no word"
		return
	}
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	result.Words = texts

	verdict, err := c.Judge.Validate(ctx, texts, snap.Language)
	if err != nil {
		result.Status = model.StatusError
		result.Diagnostic = "referee failed: " + err.Error()
		log.Error().Str("candidate", result.Candidate.Name()).Err(err).Msg("referee call failed")
		return
	}

	score, _ := bd.ScoreWords(placements, words)
	result.Score = score
	result.JudgeValid = verdict.AllValid
	if verdict.AllValid {
		result.Status = model.StatusOK
	} else {
		result.Status = model.StatusInvalid
		result.JudgeReason = verdict.Reasons()
	}
}
