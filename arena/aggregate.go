package arena

import (
	"sort"

	"lexarena/model"
)

// Aggregate sorts results for display and selects the winner. The input must
// be in candidate declaration order; the selection is fully determined by the
// results' contents, never by goroutine arrival order.
func Aggregate(results []model.CompetitionResult) Outcome {
	outcome := Outcome{Results: displaySort(results)}

	if w := selectWinner(results); w >= 0 {
		outcome.Winner = findResult(outcome.Results, results[w].Candidate.ID)
		return outcome
	}
	if b := bestAttempt(results); b >= 0 {
		outcome.BestAttempt = findResult(outcome.Results, results[b].Candidate.ID)
	}
	return outcome
}

// selectWinner returns the declaration-order index of the winning result, or
// -1 when no result is playable. Highest score wins; ties go to the earliest
// declared candidate.
func selectWinner(results []model.CompetitionResult) int {
	winner := -1
	for i, r := range results {
		if !r.Playable() {
			continue
		}
		if winner < 0 || r.Score > results[winner].Score {
			winner = i
		}
	}
	return winner
}

// bestAttempt returns the index of the most advanced failure: lowest status
// rank first, then highest score, then declaration order.
func bestAttempt(results []model.CompetitionResult) int {
	best := -1
	for i, r := range results {
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		if r.Status.Rank() < b.Status.Rank() ||
			(r.Status.Rank() == b.Status.Rank() && r.Score > b.Score) {
			best = i
		}
	}
	return best
}

// displaySort orders a copy of results for presentation: score descending,
// then status rank, then declaration order. The sort is stable so equal
// entries keep declaration order.
func displaySort(results []model.CompetitionResult) []model.CompetitionResult {
	sorted := make([]model.CompetitionResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Status.Rank() < sorted[j].Status.Rank()
	})
	return sorted
}

func findResult(results []model.CompetitionResult, id string) *model.CompetitionResult {
	for i := range results {
		if results[i].Candidate.ID == id {
			return &results[i]
		}
	}
	return nil
}
