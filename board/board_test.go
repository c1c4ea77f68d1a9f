package board

import (
	"testing"

	"lexarena/model"
)

func emptyRows() []string {
	rows := make([]string, Size)
	for i := range rows {
		rows[i] = "..............."
	}
	return rows
}

func TestFromSnapshot(t *testing.T) {
	rows := emptyRows()
	rows[7] = ".......HI......"
	b, err := FromSnapshot(model.Snapshot{Rows: rows})
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if got := b.Letter(7, 7); got != "H" {
		t.Errorf("Letter(7,7) = %q, want H", got)
	}
	if got := b.Letter(7, 8); got != "I" {
		t.Errorf("Letter(7,8) = %q, want I", got)
	}
	if b.Letter(0, 0) != "" {
		t.Error("expected (0,0) empty")
	}
	if !b.Occupied() {
		t.Error("board with letters should be occupied")
	}
}

func TestFromSnapshotBadShape(t *testing.T) {
	if _, err := FromSnapshot(model.Snapshot{Rows: []string{"..."}}); err == nil {
		t.Error("expected error for wrong row count")
	}
	rows := emptyRows()
	rows[3] = "...."
	if _, err := FromSnapshot(model.Snapshot{Rows: rows}); err == nil {
		t.Error("expected error for short row")
	}
}

func TestWordsForMoveOpening(t *testing.T) {
	b := New()
	placements := []model.Placement{
		{Row: 7, Col: 5, Letter: "H"},
		{Row: 7, Col: 6, Letter: "E"},
		{Row: 7, Col: 7, Letter: "L"},
		{Row: 7, Col: 8, Letter: "L"},
		{Row: 7, Col: 9, Letter: "O"},
	}
	b.PlaceLetters(placements)
	words := b.WordsForMove(placements)
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Text != "HELLO" {
		t.Errorf("main word = %q, want HELLO", words[0].Text)
	}

	// H4 E1 L1 L1 O1 = 8, doubled by the center square.
	score, breakdowns := b.ScoreWords(placements, words)
	if score != 16 {
		t.Errorf("score = %d, want 16", score)
	}
	if len(breakdowns) != 1 || breakdowns[0].WordMultiplier != 2 {
		t.Errorf("breakdown = %+v, want word multiplier 2", breakdowns)
	}
}

func TestWordsForMoveCrossWords(t *testing.T) {
	rows := emptyRows()
	rows[7] = ".......HE......"
	b, err := FromSnapshot(model.Snapshot{Rows: rows})
	if err != nil {
		t.Fatal(err)
	}
	// Extend H downward into HAT.
	placements := []model.Placement{
		{Row: 8, Col: 7, Letter: "A"},
		{Row: 9, Col: 7, Letter: "T"},
	}
	b.PlaceLetters(placements)
	words := b.WordsForMove(placements)
	if len(words) != 1 {
		t.Fatalf("got %d words (%v), want 1", len(words), words)
	}
	if words[0].Text != "HAT" {
		t.Errorf("word = %q, want HAT", words[0].Text)
	}
}

func TestBingoBonus(t *testing.T) {
	b := New()
	placements := []model.Placement{
		{Row: 7, Col: 3, Letter: "A"},
		{Row: 7, Col: 4, Letter: "B"},
		{Row: 7, Col: 5, Letter: "C"},
		{Row: 7, Col: 6, Letter: "D"},
		{Row: 7, Col: 7, Letter: "E"},
		{Row: 7, Col: 8, Letter: "F"},
		{Row: 7, Col: 9, Letter: "G"},
	}
	b.PlaceLetters(placements)
	words := b.WordsForMove(placements)
	score, _ := b.ScoreWords(placements, words)
	// A1 B3 C3 D2 E1 F4 G2 = 16; DL on (7,3) adds 1; center doubles: 34; +50 bingo.
	if score != 84 {
		t.Errorf("score = %d, want 84", score)
	}
}

func TestCheckPlacements(t *testing.T) {
	occupied := emptyRows()
	occupied[7] = ".......HI......"

	tests := []struct {
		name       string
		rows       []string
		placements []model.Placement
		rack       []string
		wantKept   int
		wantErr    bool
	}{
		{
			name: "valid opening through center",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "A"},
				{Row: 7, Col: 8, Letter: "T"},
			},
			rack:     []string{"A", "T", "E"},
			wantKept: 2,
		},
		{
			name: "opening misses center",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 0, Col: 0, Letter: "A"},
				{Row: 0, Col: 1, Letter: "T"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
		{
			name: "not in a single line",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "A"},
				{Row: 8, Col: 8, Letter: "T"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
		{
			name: "gap in line",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "A"},
				{Row: 7, Col: 9, Letter: "T"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
		{
			name: "letter not on rack",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "Z"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
		{
			name: "blank substitutes for missing letter",
			rows: emptyRows(),
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "Z"},
				{Row: 7, Col: 8, Letter: "A"},
			},
			rack:     []string{"A", "?"},
			wantKept: 2,
		},
		{
			name: "redundant placement dropped",
			rows: occupied,
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "H"},
				{Row: 8, Col: 7, Letter: "A"},
				{Row: 9, Col: 7, Letter: "T"},
			},
			rack:     []string{"A", "T"},
			wantKept: 2,
		},
		{
			name: "overwrite rejected",
			rows: occupied,
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "X"},
			},
			rack:    []string{"X"},
			wantErr: true,
		},
		{
			name: "disconnected from existing tiles",
			rows: occupied,
			placements: []model.Placement{
				{Row: 0, Col: 0, Letter: "A"},
				{Row: 0, Col: 1, Letter: "T"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
		{
			name: "all placements redundant",
			rows: occupied,
			placements: []model.Placement{
				{Row: 7, Col: 7, Letter: "H"},
				{Row: 7, Col: 8, Letter: "I"},
			},
			rack:    []string{"A", "T"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromSnapshot(model.Snapshot{Rows: tt.rows})
			if err != nil {
				t.Fatal(err)
			}
			kept, err := b.CheckPlacements(tt.placements, tt.rack)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(kept) != tt.wantKept {
				t.Errorf("kept %d placements, want %d", len(kept), tt.wantKept)
			}
		})
	}
}

func TestUsedPremiumNotRescored(t *testing.T) {
	rows := emptyRows()
	rows[7] = ".......A......."
	b, err := FromSnapshot(model.Snapshot{
		Rows:         rows,
		UsedPremiums: map[string]bool{"7,7": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	placements := []model.Placement{{Row: 8, Col: 7, Letter: "T"}}
	b.PlaceLetters(placements)
	words := b.WordsForMove(placements)
	score, _ := b.ScoreWords(placements, words)
	// AT = 2 with no doubling: the center premium was consumed earlier.
	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}
}
