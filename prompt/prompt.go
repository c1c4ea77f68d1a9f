// Package prompt renders the game state into the instruction text sent to
// every competing model. The orchestration core treats the rendered prompt
// as opaque; only this package knows its layout.
package prompt

import (
	"fmt"
	"strings"

	"lexarena/board"
	"lexarena/model"
)

// BuildMovePrompt renders the full move-request prompt for one turn. Every
// candidate receives the same text.
func BuildMovePrompt(snap model.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert Scrabble player for the %s language variant. ", snap.Language)
	sb.WriteString("Propose the highest-scoring legal move for the current position.\n\n")

	sb.WriteString("Rules:\n")
	sb.WriteString("- All new tiles must lie in one row (ACROSS) or one column (DOWN) with no gaps.\n")
	if snap.Empty() {
		sb.WriteString("- The board is empty: your move must cover the center square (7,7).\n")
	} else {
		sb.WriteString("- Your move must connect to tiles already on the board.\n")
	}
	sb.WriteString("- Every contiguous string your tiles create, including cross words, must be a valid word.\n")
	sb.WriteString("- Use only letters from your rack; '?' is a blank that can stand for any letter.\n\n")

	sb.WriteString("Board (15x15, '.' = empty, 0-based coordinates):\n")
	for _, row := range snap.Rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "\nYour rack: %s\n", strings.Join(snap.Rack, " "))
	sb.WriteString(premiumSummary(snap))

	sb.WriteString("\nReply with ONLY a JSON object, no prose, matching:\n")
	sb.WriteString(`{"placements": [{"row": int, "col": int, "letter": "A"}], "direction": "ACROSS"|"DOWN", "word": "..."}`)
	sb.WriteString("\nTo pass the turn instead, reply {\"pass\": true}.\n")

	return sb.String()
}

// premiumSummary lists the coordinates of premium squares not yet consumed,
// so models can aim for them.
func premiumSummary(snap model.Snapshot) string {
	b := board.New()
	byKind := map[board.Premium][]string{}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			kind := b.Cells[r][c].Premium
			if kind == board.NoPremium {
				continue
			}
			if snap.UsedPremiums[fmt.Sprintf("%d,%d", r, c)] {
				continue
			}
			byKind[kind] = append(byKind[kind], fmt.Sprintf("(%d,%d)", r, c))
		}
	}
	return fmt.Sprintf("Premiums still open (row,col): TW:%s; DW:%s; TL:%s; DL:%s.\n",
		strings.Join(byKind[board.TripleWord], ","),
		strings.Join(byKind[board.DoubleWord], ","),
		strings.Join(byKind[board.TripleLetter], ","),
		strings.Join(byKind[board.DoubleLetter], ","))
}
