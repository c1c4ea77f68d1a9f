package model

import "time"

// Candidate is the immutable configuration for one model backend competing
// to propose a move. Candidates are created from user configuration before a
// turn starts; declaration order matters for tie-breaking.
type Candidate struct {
	ID              string
	DisplayName     string
	Provider        string // provider kind: "openai", "anthropic", "openrouter", "ollama"
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration // per-call budget; zero means use the arena default
}

// Name returns the display name, falling back to the model id.
func (c Candidate) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Model
}

// Snapshot is a read-only capture of the game state for one orchestration
// call. It is shared by value across all candidate pipelines; nothing in the
// orchestration core mutates it.
type Snapshot struct {
	// Rows holds 15 strings of 15 runes each; '.' marks an empty cell,
	// anything else is the letter occupying the cell.
	Rows []string
	// Rack holds the letters available to the AI player ("?" is a blank).
	Rack []string
	// Language identifies the dictionary variant (e.g. "English", "Slovak").
	Language string
	// UsedPremiums marks premium squares already consumed by earlier moves,
	// keyed "row,col".
	UsedPremiums map[string]bool
}

// Empty reports whether no cell on the board is occupied.
func (s Snapshot) Empty() bool {
	for _, row := range s.Rows {
		for _, r := range row {
			if r != '.' && r != ' ' {
				return false
			}
		}
	}
	return true
}
