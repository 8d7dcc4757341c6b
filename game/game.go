// Package game replays a box game from its move list and keeps track of
// where in the game a viewer currently is.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/box/board"
	"github.com/domino14/box/scoring"
)

var ErrTurnOutOfRange = errors.New("turn is outside the game")

// Position is everything a viewer shows for one point in the game.
type Position struct {
	Turn    int                `json:"turn" yaml:"turn"`
	Grid    board.Grid         `json:"-" yaml:"-"`
	Rows    [][]int            `json:"grid" yaml:"grid,flow"`
	Turns   []Turn             `json:"turns" yaml:"turns"`
	Squares []scoring.Square   `json:"squares" yaml:"squares"`
	Scores  scoring.ScoreTable `json:"scores" yaml:"scores,flow"`
}

// Game wraps a History with a cursor. Moving the cursor never updates the
// board in place; every position is replayed from the start of the game.
type Game struct {
	history *History
	players playerStates

	turnnum int
	snap    *Snapshot
	squares []scoring.Square
	scores  scoring.ScoreTable
}

// NewFromHistory creates a game positioned after turnnum moves. Every move
// in the history is replayed once up front so a bad placement is reported
// here rather than while navigating.
func NewFromHistory(history *History, turnnum int) (*Game, error) {
	if history == nil {
		return nil, errors.New("history is nil")
	}
	if err := ValidateSecretColors(history.SecretColors); err != nil {
		return nil, err
	}
	if _, err := Replay(history.Moves); err != nil {
		return nil, err
	}
	g := &Game{
		history: history,
		players: newPlayerStates(history),
	}
	if err := g.PlayToTurn(turnnum); err != nil {
		return nil, err
	}
	return g, nil
}

// PlayToTurn sets the board to what it was after turnnum moves. Turn 0 is
// the empty board; NumTurns() is the final position.
func (g *Game) PlayToTurn(turnnum int) error {
	log.Debug().Int("turnnum", turnnum).Msg("playing to turn")
	if turnnum < 0 || turnnum > len(g.history.Moves) {
		return fmt.Errorf("%w: game has %v turns, you chose %v",
			ErrTurnOutOfRange, len(g.history.Moves), turnnum)
	}
	snap, err := Replay(g.history.Moves[:turnnum])
	if err != nil {
		return err
	}
	g.snap = snap
	g.turnnum = turnnum
	g.squares = scoring.Detect(snap.Grid)
	g.scores = scoring.Score(g.squares)
	g.players.setScores(g.scores)
	log.Debug().Int("turn", turnnum).Int("squares", len(g.squares)).
		Uint64("hash", snap.Grid.Hash()).Msg("played to turn")
	return nil
}

// Next moves forward one turn. It stays put at the end of the game.
func (g *Game) Next() error {
	if g.turnnum >= g.NumTurns() {
		return nil
	}
	return g.PlayToTurn(g.turnnum + 1)
}

// Prev moves back one turn. It stays put at the start of the game.
func (g *Game) Prev() error {
	if g.turnnum <= 0 {
		return nil
	}
	return g.PlayToTurn(g.turnnum - 1)
}

func (g *Game) First() error {
	return g.PlayToTurn(0)
}

func (g *Game) Last() error {
	return g.PlayToTurn(g.NumTurns())
}

// Turn returns the number of moves currently on the board.
func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) NumTurns() int {
	return len(g.history.Moves)
}

func (g *Game) History() *History {
	return g.history
}

func (g *Game) Board() board.Grid {
	return g.snap.Grid
}

func (g *Game) Snapshot() *Snapshot {
	return g.snap
}

func (g *Game) Squares() []scoring.Square {
	return g.squares
}

func (g *Game) Scores() scoring.ScoreTable {
	return g.scores
}

// MoverOf returns the index of the player who made move k (1-based), or -1
// for the starting tile, which neither player places. Players alternate
// after the starting tile, first player first.
func MoverOf(k int) int {
	if k <= 1 {
		return -1
	}
	return (k - 2) % 2
}

// PlayerOnTurn returns the index of the player who makes the next move, or
// -1 on the empty board.
func (g *Game) PlayerOnTurn() int {
	return MoverOf(g.turnnum + 1)
}

// PointsFor returns the score of a player, which is the score of their
// secret color.
func (g *Game) PointsFor(playerIdx int) int {
	return g.players[playerIdx].points
}

// PlayerScores returns both players' scores.
func (g *Game) PlayerScores() [2]int {
	return [2]int{g.PointsFor(0), g.PointsFor(1)}
}

// Winner returns the index of the player with the higher score at the
// current position, or -1 for a tie.
func (g *Game) Winner() int {
	s := g.PlayerScores()
	switch {
	case s[0] > s[1]:
		return 0
	case s[1] > s[0]:
		return 1
	}
	return -1
}

// Position returns a standalone copy of the current position.
func (g *Game) Position() *Position {
	turns := make([]Turn, len(g.snap.Turns))
	copy(turns, g.snap.Turns)
	squares := make([]scoring.Square, len(g.squares))
	copy(squares, g.squares)
	return &Position{
		Turn:    g.turnnum,
		Grid:    g.snap.Grid,
		Rows:    g.snap.Grid.Rows(),
		Turns:   turns,
		Squares: squares,
		Scores:  g.scores,
	}
}
