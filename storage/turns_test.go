package storage

import (
	"testing"
	"time"

	"lexarena/model"
)

func sampleResults() []model.CompetitionResult {
	return []model.CompetitionResult{
		{
			Candidate: model.Candidate{ID: "a", DisplayName: "GPT", Provider: "openai", Model: "gpt-4o"},
			Status:    model.StatusOK,
			Move: &model.ParsedMove{
				Placements: []model.Placement{{Row: 7, Col: 7, Letter: "A"}},
				Direction:  model.Across,
				Word:       "A",
				Method:     model.ParseDirect,
			},
			Score:      16,
			Words:      []string{"HELLO"},
			JudgeValid: true,
			ElapsedMS:  1200,
		},
		{
			Candidate:   model.Candidate{ID: "b", Provider: "ollama", Model: "llama3.1"},
			Status:      model.StatusInvalid,
			Score:       8,
			Words:       []string{"ZQX"},
			JudgeReason: "ZQX: not in word list",
			RawText:     "some raw output",
		},
		{
			Candidate:  model.Candidate{ID: "c", Provider: "openrouter", Model: "x"},
			Status:     model.StatusTimeout,
			Diagnostic: "deadline exceeded",
		},
	}
}

func TestSaveAndLoadTurn(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	results := sampleResults()
	id, err := store.SaveTurn("English", results, &results[0])
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected a generated turn id")
	}

	turn, err := store.LoadTurn(id)
	if err != nil {
		t.Fatal(err)
	}
	if turn.Language != "English" || turn.WinnerID != "a" {
		t.Errorf("turn meta = %+v", turn.TurnMeta)
	}
	if len(turn.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(turn.Results))
	}

	a := turn.Results[0]
	if a.Candidate.ID != "a" || a.Status != model.StatusOK || a.Score != 16 || !a.JudgeValid {
		t.Errorf("result a = %+v", a)
	}
	if a.Move == nil || a.Move.Word != "A" || a.Move.Method != model.ParseDirect {
		t.Errorf("stored move = %+v", a.Move)
	}
	if len(a.Words) != 1 || a.Words[0] != "HELLO" {
		t.Errorf("stored words = %v", a.Words)
	}

	if c := turn.Results[2]; c.Move != nil || c.Status != model.StatusTimeout {
		t.Errorf("result c = %+v", c)
	}
}

func TestListTurnsNewestFirst(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.SaveTurn("English", sampleResults(), nil); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := store.SaveTurn("Slovak", sampleResults()[:1], nil)
	if err != nil {
		t.Fatal(err)
	}

	turns, err := store.ListTurns()
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].ID != second {
		t.Errorf("newest turn first, got %s", turns[0].ID)
	}
	if turns[0].Results != 1 || turns[1].Results != 3 {
		t.Errorf("result counts = %d, %d", turns[0].Results, turns[1].Results)
	}
	if turns[1].WinnerID != "" {
		t.Errorf("winner id = %q, want empty", turns[1].WinnerID)
	}
}

func TestLoadTurnMissing(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.LoadTurn("nope"); err == nil {
		t.Error("expected error for unknown turn id")
	}
}
