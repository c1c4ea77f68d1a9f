package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"lexarena/model"
)

// moveJSON is the tolerant wire schema for a proposed move. Models disagree
// on details: some send start coordinates as "start": {row, col}, some as
// top-level "row"/"col"; direction arrives in any case. Everything is
// normalized into model.ParsedMove.
type moveJSON struct {
	Row        *int              `json:"row"`
	Col        *int              `json:"col"`
	Start      *coordJSON        `json:"start"`
	Direction  string            `json:"direction"`
	Placements []model.Placement `json:"placements"`
	Word       string            `json:"word"`
	Pass       bool              `json:"pass"`
}

type coordJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// UnmarshalMove parses data as JSON against the move schema and normalizes
// it. It is shared by every parser tier.
func UnmarshalMove(data []byte) (*model.ParsedMove, error) {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return normalizeMove(raw)
}

func normalizeMove(raw moveJSON) (*model.ParsedMove, error) {
	dir := model.Direction(strings.ToUpper(strings.TrimSpace(raw.Direction)))
	if dir == "" {
		dir = model.Across
	}

	mv := &model.ParsedMove{
		Placements: raw.Placements,
		Direction:  dir,
		Word:       strings.ToUpper(strings.TrimSpace(raw.Word)),
		Pass:       raw.Pass,
	}
	for i := range mv.Placements {
		mv.Placements[i].Letter = strings.ToUpper(strings.TrimSpace(mv.Placements[i].Letter))
	}
	mv.Start = canonicalStart(raw)
	if err := mv.Validate(); err != nil {
		return nil, err
	}
	return mv, nil
}

// canonicalStart resolves the main word's start coordinate from whichever
// form the model used: a "start" object, top-level "row"/"col", or, when
// neither is declared, the lowest-coordinate placement.
func canonicalStart(raw moveJSON) *model.Coord {
	if raw.Pass {
		return nil
	}
	if raw.Start != nil {
		return &model.Coord{Row: raw.Start.Row, Col: raw.Start.Col}
	}
	if raw.Row != nil && raw.Col != nil {
		return &model.Coord{Row: *raw.Row, Col: *raw.Col}
	}
	if len(raw.Placements) == 0 {
		return nil
	}
	start := model.Coord{Row: raw.Placements[0].Row, Col: raw.Placements[0].Col}
	for _, p := range raw.Placements[1:] {
		if p.Row < start.Row || (p.Row == start.Row && p.Col < start.Col) {
			start = model.Coord{Row: p.Row, Col: p.Col}
		}
	}
	return &start
}
