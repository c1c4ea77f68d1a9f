// Package board models the 15x15 game board: premium squares, tile
// placement, word extraction and scoring. It knows nothing about providers
// or orchestration; the arena package calls into it to extract and score the
// words a candidate's placements would form.
package board

import (
	"fmt"
	"strings"

	"lexarena/model"
)

// Size of the board along each axis.
const Size = 15

// Center is the starting square the first move must cover.
var Center = [2]int{7, 7}

// Premium square kinds.
type Premium int

const (
	NoPremium Premium = iota
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
)

// Cell is one square on the board.
type Cell struct {
	Letter      string // "" while empty
	IsBlank     bool   // placed from a blank tile; scores zero
	Premium     Premium
	PremiumUsed bool // premiums apply only to the move that first covers them
}

// Board is a mutable 15x15 grid. The orchestration core only ever works on
// private copies built from a read-only snapshot.
type Board struct {
	Cells [Size][Size]Cell
}

// New returns an empty board with the standard premium layout.
func New() *Board {
	b := &Board{}
	for _, sq := range premiumLayout {
		b.Cells[sq.row][sq.col].Premium = sq.kind
	}
	return b
}

// FromSnapshot reconstructs a board from a game-state snapshot. Premium
// squares already consumed by earlier moves are marked used so re-covering
// them scores no bonus.
func FromSnapshot(s model.Snapshot) (*Board, error) {
	if len(s.Rows) != Size {
		return nil, fmt.Errorf("snapshot must have %d rows, got %d", Size, len(s.Rows))
	}
	b := New()
	for r, row := range s.Rows {
		runes := []rune(row)
		if len(runes) != Size {
			return nil, fmt.Errorf("snapshot row %d must have %d cells, got %d", r, Size, len(runes))
		}
		for c, ch := range runes {
			if ch == '.' || ch == ' ' {
				continue
			}
			b.Cells[r][c].Letter = strings.ToUpper(string(ch))
		}
	}
	for key := range s.UsedPremiums {
		var r, c int
		if _, err := fmt.Sscanf(key, "%d,%d", &r, &c); err != nil {
			return nil, fmt.Errorf("bad premium key %q", key)
		}
		if !b.Inside(r, c) {
			return nil, fmt.Errorf("premium key %q out of range", key)
		}
		b.Cells[r][c].PremiumUsed = true
	}
	return b, nil
}

// Inside reports whether (row, col) is on the board.
func (b *Board) Inside(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Letter returns the letter at (row, col), or "" when empty.
func (b *Board) Letter(row, col int) string {
	return b.Cells[row][col].Letter
}

// Occupied reports whether any cell holds a letter.
func (b *Board) Occupied() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c].Letter != "" {
				return true
			}
		}
	}
	return false
}

// PlaceLetters applies the placements without any rule validation.
// A "?" letter is stored as a blank scoring zero.
func (b *Board) PlaceLetters(placements []model.Placement) {
	for _, p := range placements {
		cell := &b.Cells[p.Row][p.Col]
		cell.Letter = strings.ToUpper(p.Letter)
		cell.IsBlank = p.Letter == "?"
	}
}

// extendWord walks from (row, col) to the start of the contiguous word in
// the given direction and returns the coordinates of the whole word.
func (b *Board) extendWord(row, col int, dir model.Direction) [][2]int {
	dr, dc := 0, 1
	if dir == model.Down {
		dr, dc = 1, 0
	}
	r, c := row, col
	for b.Inside(r-dr, c-dc) && b.Letter(r-dr, c-dc) != "" {
		r -= dr
		c -= dc
	}
	var coords [][2]int
	for b.Inside(r, c) && b.Letter(r, c) != "" {
		coords = append(coords, [2]int{r, c})
		r += dr
		c += dc
	}
	return coords
}

// Word is one word formed on the board, with the cells spelling it.
type Word struct {
	Text   string
	Coords [][2]int
}

// WordsForMove finds the main word plus every new cross word formed by the
// placements. The placements must already be on the board. Single letters do
// not count as words.
func (b *Board) WordsForMove(placements []model.Placement) []Word {
	dir := PlacementsInLine(placements)
	if dir == "" {
		return nil
	}

	type key struct {
		r, c int
		d    model.Direction
	}
	seen := map[key]Word{}
	var order []key

	add := func(coords [][2]int, d model.Direction) {
		if len(coords) < 2 {
			return
		}
		k := key{coords[0][0], coords[0][1], d}
		if _, ok := seen[k]; ok {
			return
		}
		var sb strings.Builder
		for _, rc := range coords {
			sb.WriteString(b.Letter(rc[0], rc[1]))
		}
		seen[k] = Word{Text: sb.String(), Coords: coords}
		order = append(order, k)
	}

	add(b.extendWord(placements[0].Row, placements[0].Col, dir), dir)

	cross := model.Down
	if dir == model.Down {
		cross = model.Across
	}
	for _, p := range placements {
		add(b.extendWord(p.Row, p.Col, cross), cross)
	}

	words := make([]Word, 0, len(order))
	for _, k := range order {
		words = append(words, seen[k])
	}
	return words
}

type premiumSquare struct {
	row, col int
	kind     Premium
}

// Standard premium layout. The center square doubles the first word.
var premiumLayout = buildPremiumLayout()

func buildPremiumLayout() []premiumSquare {
	var out []premiumSquare
	add := func(kind Premium, coords ...[2]int) {
		for _, rc := range coords {
			out = append(out, premiumSquare{rc[0], rc[1], kind})
		}
	}
	add(TripleWord,
		[2]int{0, 0}, [2]int{0, 7}, [2]int{0, 14},
		[2]int{7, 0}, [2]int{7, 14},
		[2]int{14, 0}, [2]int{14, 7}, [2]int{14, 14})
	add(DoubleWord,
		[2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4},
		[2]int{10, 10}, [2]int{11, 11}, [2]int{12, 12}, [2]int{13, 13},
		[2]int{1, 13}, [2]int{2, 12}, [2]int{3, 11}, [2]int{4, 10},
		[2]int{10, 4}, [2]int{11, 3}, [2]int{12, 2}, [2]int{13, 1},
		[2]int{7, 7})
	add(TripleLetter,
		[2]int{1, 5}, [2]int{1, 9}, [2]int{5, 1}, [2]int{5, 5},
		[2]int{5, 9}, [2]int{5, 13}, [2]int{9, 1}, [2]int{9, 5},
		[2]int{9, 9}, [2]int{9, 13}, [2]int{13, 5}, [2]int{13, 9})
	add(DoubleLetter,
		[2]int{0, 3}, [2]int{0, 11}, [2]int{2, 6}, [2]int{2, 8},
		[2]int{3, 0}, [2]int{3, 7}, [2]int{3, 14}, [2]int{6, 2},
		[2]int{6, 6}, [2]int{6, 8}, [2]int{6, 12}, [2]int{7, 3},
		[2]int{7, 11}, [2]int{8, 2}, [2]int{8, 6}, [2]int{8, 8},
		[2]int{8, 12}, [2]int{11, 0}, [2]int{11, 7}, [2]int{11, 14},
		[2]int{12, 6}, [2]int{12, 8}, [2]int{14, 3}, [2]int{14, 11})
	return out
}
