package judge

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"lexarena/model"
)

// WordlistJudge validates words against an in-memory word list. It serves
// offline play and tests, where a network referee is unavailable or
// unwanted.
type WordlistJudge struct {
	words map[string]bool
}

// NewWordlistJudge builds a judge from the given words.
func NewWordlistJudge(words []string) *WordlistJudge {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToUpper(strings.TrimSpace(w))] = true
	}
	return &WordlistJudge{words: set}
}

// LoadWordlistJudge reads a newline-separated word list file. Blank lines
// and lines starting with '#' are skipped.
func LoadWordlistJudge(path string) (*WordlistJudge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return NewWordlistJudge(words), nil
}

// Len returns the number of words loaded.
func (j *WordlistJudge) Len() int { return len(j.words) }

// Validate implements Judge. The language argument is ignored; the loaded
// list defines the lexicon.
func (j *WordlistJudge) Validate(ctx context.Context, words []string, language string) (model.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return model.Verdict{}, err
	}
	verdict := model.Verdict{AllValid: true}
	for _, w := range words {
		upper := strings.ToUpper(strings.TrimSpace(w))
		if j.words[upper] {
			verdict.Words = append(verdict.Words, model.WordReason{Word: upper, Valid: true, Reason: "found in word list"})
			continue
		}
		verdict.AllValid = false
		verdict.Words = append(verdict.Words, model.WordReason{Word: upper, Valid: false, Reason: "not in word list"})
	}
	return verdict, nil
}
