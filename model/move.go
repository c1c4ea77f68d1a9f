package model

import (
	"fmt"
	"strings"
)

// Direction of a move's main word.
type Direction string

const (
	Across Direction = "ACROSS"
	Down   Direction = "DOWN"
)

// Placement is one letter laid on the board in this move.
type Placement struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
}

// Coord is a board coordinate.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseMethod records which parser tier recovered a move from raw text.
type ParseMethod string

const (
	ParseDirect      ParseMethod = "direct"
	ParseMarkdown    ParseMethod = "markdown_extraction"
	ParseLLMFallback ParseMethod = "llm_fallback"
)

// ParsedMove is a structured move recovered from a model's response.
// Either Pass is true and Placements is empty, or Placements is non-empty.
type ParsedMove struct {
	Placements []Placement
	Direction  Direction
	Word       string
	Pass       bool
	// Start is the canonical start coordinate of the main word, either as
	// declared by the model or derived from the placements. Display-only.
	Start  *Coord
	Method ParseMethod
	// FallbackAnalysis holds the extractor's own explanation when
	// Method == ParseLLMFallback, for the inspection view.
	FallbackAnalysis string
}

// Validate checks structural invariants common to every tier: coordinates in
// range, single-rune letters, and pass/placements consistency.
func (m *ParsedMove) Validate() error {
	if m.Pass {
		if len(m.Placements) > 0 {
			return fmt.Errorf("pass move must not carry placements")
		}
		return nil
	}
	if len(m.Placements) == 0 {
		return fmt.Errorf("placements required for a play")
	}
	for _, p := range m.Placements {
		if p.Row < 0 || p.Row > 14 || p.Col < 0 || p.Col > 14 {
			return fmt.Errorf("placement out of range: (%d,%d)", p.Row, p.Col)
		}
		if len([]rune(strings.TrimSpace(p.Letter))) != 1 {
			return fmt.Errorf("placement letter must be a single character, got %q", p.Letter)
		}
	}
	switch m.Direction {
	case Across, Down:
	default:
		return fmt.Errorf("invalid direction %q", m.Direction)
	}
	if m.Start != nil {
		if m.Start.Row < 0 || m.Start.Row > 14 || m.Start.Col < 0 || m.Start.Col > 14 {
			return fmt.Errorf("start out of range: (%d,%d)", m.Start.Row, m.Start.Col)
		}
	}
	return nil
}
