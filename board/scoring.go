package board

import "lexarena/model"

// BingoBonus is awarded when a move uses all seven rack tiles.
const BingoBonus = 50

// English tile point values. Blanks score zero via Cell.IsBlank.
var tilePoints = map[string]int{
	"A": 1, "B": 3, "C": 3, "D": 2, "E": 1, "F": 4, "G": 2, "H": 4,
	"I": 1, "J": 8, "K": 5, "L": 1, "M": 3, "N": 1, "O": 1, "P": 3,
	"Q": 10, "R": 1, "S": 1, "T": 1, "U": 1, "V": 4, "W": 4, "X": 8,
	"Y": 4, "Z": 10,
}

// TilePoints returns the point value of a letter, zero for unknown runes.
func TilePoints(letter string) int {
	return tilePoints[letter]
}

// ScoreBreakdown explains one word's contribution to the move score.
type ScoreBreakdown struct {
	Word           string
	BasePoints     int
	LetterBonus    int
	WordMultiplier int
	Total          int
}

// ScoreWords computes the total score for a move. Letter and word premiums
// apply only on cells newly covered by this move and not consumed by an
// earlier one. The placements must already be on the board.
func (b *Board) ScoreWords(placements []model.Placement, words []Word) (int, []ScoreBreakdown) {
	newCells := map[[2]int]bool{}
	for _, p := range placements {
		newCells[[2]int{p.Row, p.Col}] = true
	}

	total := 0
	breakdowns := make([]ScoreBreakdown, 0, len(words))
	for _, w := range words {
		wordMult := 1
		points := 0
		letterBonus := 0
		for _, rc := range w.Coords {
			cell := b.Cells[rc[0]][rc[1]]
			base := 0
			if !cell.IsBlank {
				base = tilePoints[cell.Letter]
			}
			if newCells[rc] && cell.Premium != NoPremium && !cell.PremiumUsed {
				switch cell.Premium {
				case DoubleLetter:
					letterBonus += base
				case TripleLetter:
					letterBonus += base * 2
				case DoubleWord:
					wordMult *= 2
				case TripleWord:
					wordMult *= 3
				}
			}
			points += base
		}
		sub := (points + letterBonus) * wordMult
		total += sub
		breakdowns = append(breakdowns, ScoreBreakdown{
			Word:           w.Text,
			BasePoints:     points,
			LetterBonus:    letterBonus,
			WordMultiplier: wordMult,
			Total:          sub,
		})
	}
	if len(placements) == 7 {
		total += BingoBonus
	}
	return total, breakdowns
}

// ConsumePremiums marks the premiums under the placements as used. Called
// after a move is committed, never during candidate evaluation.
func (b *Board) ConsumePremiums(placements []model.Placement) {
	for _, p := range placements {
		cell := &b.Cells[p.Row][p.Col]
		if cell.Premium != NoPremium {
			cell.PremiumUsed = true
		}
	}
}
