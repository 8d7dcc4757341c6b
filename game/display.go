package game

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/domino14/box/scoring"
)

// maximum number of squares listed beside the board
const maxSquaresShown = 8

func splitSubN(s string, n int) []string {
	sub := ""
	subs := []string{}

	runes := bytes.Runes([]byte(s))
	l := len(runes)
	for i, r := range runes {
		sub = sub + string(r)
		if (i+1)%n == 0 {
			subs = append(subs, sub)
			sub = ""
		} else if (i + 1) == l {
			subs = append(subs, sub)
		}
	}

	return subs
}

func addText(lines []string, row int, hpad int, text string) {
	maxTextSize := 42
	sp := splitSubN(text, maxTextSize)

	for _, chunk := range sp {
		if row >= len(lines) {
			return
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
}

// ToDisplayText draws the board with the players, the last move and the
// largest squares written beside it.
func (g *Game) ToDisplayText() string {
	grid := g.snap.Grid
	bt := grid.ToDisplayText()
	bts := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 1

	for pi := 0; pi < 2; pi++ {
		addText(bts, vpadding+pi, hpadding,
			g.players[pi].stateString(g.turnnum < g.NumTurns() && g.PlayerOnTurn() == pi))
	}

	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Turn %d of %d:", g.turnnum, g.NumTurns()))
	if last := g.snap.LastTurn(); last != nil {
		who := "Starting tile"
		if mover := MoverOf(g.turnnum); mover >= 0 {
			who = g.players[mover].Nickname + " played"
		}
		addText(bts, vpadding+4, hpadding, fmt.Sprintf("%s %s", who, last.Token))
	}

	vpadding = 7
	addText(bts, vpadding, hpadding, fmt.Sprintf("Squares: (%d)", len(g.squares)))
	for i, sq := range scoring.SortBySizeDesc(g.squares) {
		if i == maxSquaresShown {
			addText(bts, vpadding+1+i, hpadding, "...")
			break
		}
		addText(bts, vpadding+1+i, hpadding, sq.String())
	}

	if g.turnnum == g.NumTurns() && g.NumTurns() > 0 {
		winner := "Game is over. It's a tie."
		if w := g.Winner(); w >= 0 {
			winner = fmt.Sprintf("Game is over. %s wins.", g.players[w].Nickname)
		}
		addText(bts, 17, hpadding, winner)
	}

	return strings.Join(append(bts, fmt.Sprintf("position %016x", grid.Hash())), "\n")
}
