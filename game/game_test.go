package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
)

func squareGameHistory(t *testing.T) *History {
	t.Helper()
	h, err := NewHistory([2]string{"alice", "bob"}, [2]board.Color{1, 6},
		[]string{"Aa123456h", "Ca654321h", "Ag111111v", "Aa111111h"})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestNewFromHistory(t *testing.T) {
	is := is.New(t)
	h := squareGameHistory(t)
	g, err := NewFromHistory(h, 0)
	is.NoErr(err)
	is.Equal(g.Turn(), 0)
	is.Equal(g.NumTurns(), 4)
	is.Equal(g.Board(), board.Grid{})
	is.Equal(len(g.Squares()), 0)
	is.Equal(g.PlayerScores(), [2]int{0, 0})
	is.Equal(g.Winner(), -1)

	_, err = NewFromHistory(h, 5)
	is.True(errors.Is(err, ErrTurnOutOfRange))
}

func TestNavigation(t *testing.T) {
	is := is.New(t)
	h := squareGameHistory(t)
	g, err := NewFromHistory(h, 0)
	is.NoErr(err)

	is.NoErr(g.Prev())
	is.Equal(g.Turn(), 0)

	is.NoErr(g.Next())
	is.NoErr(g.Next())
	is.Equal(g.Turn(), 2)
	afterTwo := g.Board()

	is.NoErr(g.Last())
	is.Equal(g.Turn(), 4)
	is.NoErr(g.Next())
	is.Equal(g.Turn(), 4)

	is.NoErr(g.Prev())
	is.NoErr(g.Prev())
	is.Equal(g.Board(), afterTwo)

	is.NoErr(g.First())
	is.Equal(g.Board(), board.Grid{})

	err = g.PlayToTurn(-1)
	is.True(errors.Is(err, ErrTurnOutOfRange))
	// a failed jump keeps the old position
	is.Equal(g.Turn(), 0)
}

func TestMoverOf(t *testing.T) {
	is := is.New(t)
	is.Equal(MoverOf(1), -1)
	is.Equal(MoverOf(2), 0)
	is.Equal(MoverOf(3), 1)
	is.Equal(MoverOf(4), 0)
}

func TestPositionScores(t *testing.T) {
	is := is.New(t)
	h := squareGameHistory(t)
	g, err := NewFromHistory(h, 4)
	is.NoErr(err)
	pos := g.Position()
	is.Equal(pos.Turn, 4)
	is.Equal(len(pos.Turns), 4)
	is.Equal(len(pos.Rows), board.Height)
	is.Equal(pos.Scores.Total(), sumSizes(pos))
	is.Equal(g.PlayerScores(), [2]int{pos.Scores.For(1), pos.Scores.For(6)})
	// the final row-0 tile of 1s makes every 1 in rows 0 and 1 a corner
	is.True(pos.Scores.For(1) > 0)
	is.Equal(g.Winner(), 0)

	// the position is a copy
	pos.Squares[0].Size = 99
	is.True(g.Squares()[0].Size != 99)
}

func sumSizes(p *Position) int {
	n := 0
	for _, s := range p.Squares {
		n += s.Size
	}
	return n
}

func TestBadHistory(t *testing.T) {
	is := is.New(t)
	h := squareGameHistory(t)
	h.SecretColors[1] = 7
	_, err := NewFromHistory(h, 0)
	is.True(errors.Is(err, ErrInvalidSecretColors))

	h = squareGameHistory(t)
	h.Moves = append(h.Moves, mustMoves(t, "Pt123456h")...)
	_, err = NewFromHistory(h, 0)
	is.True(errors.Is(err, ErrPlacementOutOfBounds))
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	board.ColorSupport = false
	defer func() { board.ColorSupport = true }()
	g, err := NewFromHistory(squareGameHistory(t), 1)
	is.NoErr(err)
	text := g.ToDisplayText()
	is.True(strings.Contains(text, "alice"))
	is.True(strings.Contains(text, "bob"))
	is.True(strings.Contains(text, "Turn 1 of 4:"))
	is.True(strings.Contains(text, "Starting tile Aa123456h"))
	is.NoErr(g.Next())
	is.True(strings.Contains(g.ToDisplayText(), "alice played Ca654321h"))
	is.True(strings.Contains(text, " A|1 2 3 4 5 6"))
	is.True(!strings.Contains(text, "Game is over"))

	is.NoErr(g.Last())
	is.True(strings.Contains(g.ToDisplayText(), "Game is over. alice wins."))
}
