// Package judge decides whether formed words are legitimate in the game's
// language. The arena calls one judge per candidate, concurrently.
//
// Two implementations exist: OpenAIJudge asks a referee model for a strict
// JSON verdict, and WordlistJudge answers from a local word list for offline
// play and tests. Unlike providers, a judge returns a Go error when its own
// call fails: a broken referee is a systemic problem, not a candidate's bad
// behavior. The arena maps that error onto the affected candidate.
package judge

import (
	"context"

	"lexarena/model"
)

// Judge validates a batch of words for a language.
type Judge interface {
	Validate(ctx context.Context, words []string, language string) (model.Verdict, error)
}
