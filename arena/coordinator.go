// Package arena runs one move competition: it fans a rendered prompt out to
// every configured candidate, recovers a structured move from each response,
// validates the formed words with the referee, and picks a winner. One
// CompetitionResult comes back per candidate no matter how that candidate's
// pipeline ended.
package arena

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"lexarena/judge"
	"lexarena/model"
	"lexarena/parse"
	"lexarena/prompt"
)

// DefaultTimeout bounds a whole competition when the config does not say
// otherwise.
const DefaultTimeout = 120 * time.Second

// Entrant pairs a candidate's configuration with its constructed client.
type Entrant struct {
	Candidate model.Candidate
	Client    model.Provider
}

// Stage identifies where in its pipeline a candidate currently is.
type Stage string

const (
	StageCalling    Stage = "calling"
	StageParsing    Stage = "parsing"
	StageValidating Stage = "validating"
	StageDone       Stage = "done"
)

// Event is a progress notification for one candidate. Result is non-nil only
// for StageDone.
type Event struct {
	CandidateID string
	Stage       Stage
	Result      *model.CompetitionResult
}

// Coordinator orchestrates one competition per Run call. It is safe to reuse
// across turns.
type Coordinator struct {
	Judge judge.Judge
	// Extractor powers the last parser tier. Nil disables the fallback.
	Extractor parse.Extractor
	// Timeout is the shared budget for the whole competition.
	Timeout time.Duration
	// FallbackMinChars gates the extractor tier; zero means the parser default.
	FallbackMinChars int
	// OnEvent, when set, receives progress events. It is called from the
	// candidate goroutines and must be safe for concurrent use.
	OnEvent func(Event)
}

// Outcome is the aggregate of one competition.
type Outcome struct {
	// Results holds one entry per entrant, sorted for display: score
	// descending, then status rank, then declaration order.
	Results []model.CompetitionResult
	// Winner points into Results when some candidate produced a playable
	// move. Nil otherwise.
	Winner *model.CompetitionResult
	// BestAttempt points at the most advanced failure when no winner exists,
	// so the UI can explain what went wrong. Nil when Winner is set or there
	// were no entrants.
	BestAttempt *model.CompetitionResult
}

// Run executes the competition. Exactly one result per entrant is always
// returned; a candidate's crash, timeout, or garbage output becomes that
// candidate's result and never disturbs the others. An error is returned
// only when the competition cannot start at all.
func (c *Coordinator) Run(ctx context.Context, snap model.Snapshot, entrants []Entrant) (Outcome, error) {
	if len(entrants) == 0 {
		return Outcome{}, fmt.Errorf("no candidates configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	movePrompt := prompt.BuildMovePrompt(snap)
	log.Info().Int("candidates", len(entrants)).Str("language", snap.Language).Msg("starting move competition")

	type indexed struct {
		idx    int
		result model.CompetitionResult
	}
	resultCh := make(chan indexed, len(entrants))

	// pastCall flips once a candidate's provider call has returned. The
	// shared deadline stamps only candidates still inside the call phase;
	// the validation phase has no global timeout.
	pastCall := make([]atomic.Bool, len(entrants))

	for i, e := range entrants {
		go func(idx int, e Entrant) {
			resultCh <- indexed{idx: idx, result: c.runCandidate(runCtx, snap, movePrompt, e, &pastCall[idx])}
		}(i, e)
	}

	// Collect into declaration-order slots regardless of arrival order, so
	// ties and display sorting stay deterministic. A provider that ignores
	// cancellation must not stall the batch: when the shared deadline fires,
	// candidates still waiting on their provider are finalized as timeouts
	// and their goroutines drain into the buffered channel whenever they do
	// return.
	results := make([]model.CompetitionResult, len(entrants))
	finalized := make([]bool, len(entrants))
	pending := len(entrants)
	deadline := runCtx.Done()
	for pending > 0 {
		select {
		case r := <-resultCh:
			if !finalized[r.idx] {
				results[r.idx] = r.result
				finalized[r.idx] = true
				pending--
			}
		case <-deadline:
			// A nil channel blocks forever, so after the deadline fires the
			// loop only waits on the post-call candidates still finishing.
			deadline = nil
			for i := range entrants {
				if finalized[i] || pastCall[i].Load() {
					continue
				}
				results[i] = model.CompetitionResult{
					Candidate:  entrants[i].Candidate,
					Status:     model.StatusTimeout,
					Diagnostic: fmt.Sprintf("no response within the shared %s timeout", timeout),
					ElapsedMS:  timeout.Milliseconds(),
				}
				finalized[i] = true
				pending--
				log.Warn().Str("candidate", entrants[i].Candidate.Name()).Msg("candidate missed the shared deadline")
				c.emit(Event{CandidateID: entrants[i].Candidate.ID, Stage: StageDone, Result: &results[i]})
			}
		}
	}

	outcome := Aggregate(results)
	if outcome.Winner != nil {
		log.Info().Str("winner", outcome.Winner.Candidate.Name()).Int("score", outcome.Winner.Score).Msg("competition finished")
	} else {
		log.Warn().Msg("competition finished with no playable move")
	}
	return outcome, nil
}

// runCandidate drives one candidate's full pipeline. It never panics out:
// a panic anywhere inside becomes a StatusError result for this candidate.
func (c *Coordinator) runCandidate(ctx context.Context, snap model.Snapshot, movePrompt string, e Entrant, pastCall *atomic.Bool) (result model.CompetitionResult) {
	start := time.Now()
	result = model.CompetitionResult{Candidate: e.Candidate}

	defer func() {
		if r := recover(); r != nil {
			result.Status = model.StatusError
			result.Diagnostic = fmt.Sprintf("candidate pipeline panicked: %v", r)
			log.Error().Str("candidate", e.Candidate.Name()).Interface("panic", r).Msg("recovered candidate panic")
		}
		result.ElapsedMS = time.Since(start).Milliseconds()
		c.emit(Event{CandidateID: e.Candidate.ID, Stage: StageDone, Result: &result})
	}()

	callCtx := ctx
	if e.Candidate.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.Candidate.Timeout)
		defer cancel()
	}

	c.emit(Event{CandidateID: e.Candidate.ID, Stage: StageCalling})
	raw := e.Client.Propose(callCtx, []model.Message{{Role: "user", Content: movePrompt}}, e.Candidate.MaxOutputTokens)
	pastCall.Store(true)
	result.RawText = raw.Text

	switch raw.Status {
	case model.RawOK:
		// Keep the normalizer's note about which envelope field the text was
		// recovered from; the inspection view wants it.
		result.Diagnostic = raw.Diagnostic
	case model.RawTimeout:
		result.Status = model.StatusTimeout
		result.Diagnostic = raw.Diagnostic
		return result
	case model.RawEmpty:
		result.Status = model.StatusParseError
		result.Diagnostic = "model returned no text"
		return result
	default:
		result.Status = model.StatusError
		result.Diagnostic = raw.Diagnostic
		return result
	}

	// The call phase is over; the fallback extractor and the referee run
	// detached from the shared deadline so a candidate that answered in time
	// still gets judged even when judging crosses it.
	postCtx := context.WithoutCancel(ctx)

	c.emit(Event{CandidateID: e.Candidate.ID, Stage: StageParsing})
	parser := &parse.Parser{Extractor: c.Extractor, FallbackMinChars: c.FallbackMinChars}
	move, err := parser.Parse(postCtx, raw.Text)
	if err != nil {
		result.Status = model.StatusParseError
		result.Diagnostic = err.Error()
		log.Debug().Str("candidate", e.Candidate.Name()).Err(err).Msg("unparseable response")
		return result
	}
	result.Move = move

	c.emit(Event{CandidateID: e.Candidate.ID, Stage: StageValidating})
	c.validate(postCtx, snap, &result)
	return result
}

func (c *Coordinator) emit(ev Event) {
	if c.OnEvent != nil {
		c.OnEvent(ev)
	}
}
