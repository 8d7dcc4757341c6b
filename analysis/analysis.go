// Package analysis scores finished games, one at a time or in batches, and
// compares players across many games.
package analysis

import (
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/box/board"
	"github.com/domino14/box/game"
	"github.com/domino14/box/scoring"
	"github.com/domino14/box/transcript"
)

// Competition points for one game: a win is worth 200 plus the score
// difference, a loss 100 minus it and a tie 150.
const (
	winBase  = 200
	lossBase = 100
	tiePts   = 150
)

// Result is the scored position of one game.
type Result struct {
	Source       string             `json:"source,omitempty" yaml:"source,omitempty"`
	Players      [2]string          `json:"players" yaml:"players,flow"`
	SecretColors [2]board.Color     `json:"secret_colors" yaml:"secret_colors,flow"`
	Turn         int                `json:"turn" yaml:"turn"`
	NumMoves     int                `json:"num_moves" yaml:"num_moves"`
	Grid         [][]int            `json:"grid" yaml:"grid,flow"`
	Squares      []scoring.Square   `json:"squares" yaml:"squares"`
	Scores       scoring.ScoreTable `json:"scores" yaml:"scores,flow"`
	PlayerScores [2]int             `json:"player_scores" yaml:"player_scores,flow"`
	// Winner is the index of the winning player, or -1 for a tie.
	Winner            int    `json:"winner" yaml:"winner"`
	WinnerName        string `json:"winner_name,omitempty" yaml:"winner_name,omitempty"`
	CompetitionPoints [2]int `json:"competition_points" yaml:"competition_points,flow"`
}

// CompetitionPoints converts two game scores into competition points.
func CompetitionPoints(scores [2]int) [2]int {
	var pts [2]int
	for p := 0; p < 2; p++ {
		diff := scores[p] - scores[1-p]
		switch {
		case diff > 0:
			pts[p] = winBase + diff
		case diff < 0:
			pts[p] = lossBase + diff
		default:
			pts[p] = tiePts
		}
	}
	return pts
}

// ScoreHistoryAt scores h after its first turn moves.
func ScoreHistoryAt(h *game.History, turn int) (*Result, error) {
	g, err := game.NewFromHistory(h, turn)
	if err != nil {
		return nil, err
	}
	pos := g.Position()
	res := &Result{
		Source:       h.Source,
		Players:      [2]string{h.Players[0].Nickname, h.Players[1].Nickname},
		SecretColors: h.SecretColors,
		Turn:         pos.Turn,
		NumMoves:     g.NumTurns(),
		Grid:         pos.Rows,
		Squares:      scoring.SortBySizeDesc(pos.Squares),
		Scores:       pos.Scores,
		PlayerScores: g.PlayerScores(),
		Winner:       g.Winner(),
	}
	if res.Winner >= 0 {
		res.WinnerName = res.Players[res.Winner]
	}
	res.CompetitionPoints = CompetitionPoints(res.PlayerScores)
	log.Debug().Str("source", h.Source).Int("turn", turn).
		Ints("scores", res.PlayerScores[:]).Msg("scored game")
	return res, nil
}

// ScoreHistory scores the final position of h.
func ScoreHistory(h *game.History) (*Result, error) {
	return ScoreHistoryAt(h, len(h.Moves))
}

// ScoreTranscriptFromReader parses and scores one transcript.
func ScoreTranscriptFromReader(name string, r io.Reader) (*Result, error) {
	h, err := transcript.ParseTranscriptFromReader(r, name)
	if err != nil {
		return nil, err
	}
	return ScoreHistory(h)
}

// ScoreTranscript parses and scores transcript text.
func ScoreTranscript(name, text string) (*Result, error) {
	return ScoreTranscriptFromReader(name, strings.NewReader(text))
}
