package board

import (
	"fmt"

	"lexarena/model"
)

// PlacementsInLine reports whether all placements share one row (ACROSS) or
// one column (DOWN). Returns "" when they do neither.
func PlacementsInLine(placements []model.Placement) model.Direction {
	if len(placements) == 0 {
		return ""
	}
	sameRow, sameCol := true, true
	for _, p := range placements[1:] {
		if p.Row != placements[0].Row {
			sameRow = false
		}
		if p.Col != placements[0].Col {
			sameCol = false
		}
	}
	if sameRow {
		return model.Across
	}
	if sameCol {
		return model.Down
	}
	return ""
}

// FirstMoveCoversCenter reports whether any placement lands on the center
// square.
func FirstMoveCoversCenter(placements []model.Placement) bool {
	for _, p := range placements {
		if p.Row == Center[0] && p.Col == Center[1] {
			return true
		}
	}
	return false
}

// ConnectedToExisting reports whether at least one placement is orthogonally
// adjacent to a tile already on the board. An empty board passes; the center
// check covers that case instead.
func (b *Board) ConnectedToExisting(placements []model.Placement) bool {
	if !b.Occupied() {
		return true
	}
	for _, p := range placements {
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r, c := p.Row+d[0], p.Col+d[1]
			if b.Inside(r, c) && b.Letter(r, c) != "" {
				return true
			}
		}
	}
	return false
}

// NoGapsInLine checks that after placing, the main line holds a contiguous
// run of letters between the outermost placements, counting tiles already on
// the board.
func (b *Board) NoGapsInLine(placements []model.Placement, dir model.Direction) bool {
	newCells := map[[2]int]bool{}
	for _, p := range placements {
		newCells[[2]int{p.Row, p.Col}] = true
	}
	if dir == model.Across {
		r := placements[0].Row
		cmin, cmax := placements[0].Col, placements[0].Col
		for _, p := range placements {
			if p.Col < cmin {
				cmin = p.Col
			}
			if p.Col > cmax {
				cmax = p.Col
			}
		}
		for c := cmin; c <= cmax; c++ {
			if b.Letter(r, c) == "" && !newCells[[2]int{r, c}] {
				return false
			}
		}
		return true
	}
	c := placements[0].Col
	rmin, rmax := placements[0].Row, placements[0].Row
	for _, p := range placements {
		if p.Row < rmin {
			rmin = p.Row
		}
		if p.Row > rmax {
			rmax = p.Row
		}
	}
	for r := rmin; r <= rmax; r++ {
		if b.Letter(r, c) == "" && !newCells[[2]int{r, c}] {
			return false
		}
	}
	return true
}

// CheckPlacements runs every geometry rule against a candidate move and
// returns the surviving placements: tiles the model "re-placed" on cells
// already holding the same letter are dropped as redundant. A descriptive
// error names the first rule violated.
//
// The rules, in order: no overwriting existing tiles, at least one new tile,
// letters available on the rack (blanks substitute for missing letters),
// single line, no gaps, center on the opening move, connection afterwards.
func (b *Board) CheckPlacements(placements []model.Placement, rack []string) ([]model.Placement, error) {
	var kept []model.Placement
	for _, p := range placements {
		existing := b.Letter(p.Row, p.Col)
		if existing != "" {
			if existing == p.Letter {
				continue // redundant, the tile is already there
			}
			return nil, fmt.Errorf("cell (%d,%d) already holds %q, cannot place %q", p.Row, p.Col, existing, p.Letter)
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no new tiles placed; every placement was redundant or occupied")
	}

	remaining := append([]string(nil), rack...)
	for _, p := range kept {
		if !consume(&remaining, p.Letter) && !consume(&remaining, "?") {
			return nil, fmt.Errorf("letter %q is not on the rack %v", p.Letter, rack)
		}
	}

	dir := PlacementsInLine(kept)
	if dir == "" {
		return nil, fmt.Errorf("placements are not in a single line")
	}
	if !b.NoGapsInLine(kept, dir) {
		return nil, fmt.Errorf("placements leave gaps in the line; the move must be contiguous")
	}
	if !b.Occupied() {
		if !FirstMoveCoversCenter(kept) {
			return nil, fmt.Errorf("first move must cover the center square (7,7)")
		}
	} else if !b.ConnectedToExisting(kept) {
		return nil, fmt.Errorf("move must connect to existing tiles")
	}
	return kept, nil
}

func consume(rack *[]string, letter string) bool {
	for i, l := range *rack {
		if l == letter {
			*rack = append((*rack)[:i], (*rack)[i+1:]...)
			return true
		}
	}
	return false
}
