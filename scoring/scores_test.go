package scoring

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
)

func TestScore(t *testing.T) {
	is := is.New(t)
	squares := []Square{
		{Color: 1, Size: 2},
		{Color: 4, Size: 1},
		{Color: 1, Size: 5},
	}
	table := Score(squares)
	is.Equal(table.For(1), 7)
	is.Equal(table.For(4), 1)
	is.Equal(table.For(6), 0)
	is.Equal(table.For(board.Empty), 0)
	is.Equal(table.Total(), 8)

	// order does not matter
	rev := []Square{squares[2], squares[1], squares[0]}
	is.Equal(Score(rev), table)
}

func TestScoreIgnoresNonTileColors(t *testing.T) {
	is := is.New(t)
	table := Score([]Square{
		{Color: 7, Size: 3},
		{Color: 255, Size: 4},
		{Color: board.Empty, Size: 2},
		{Color: 2, Size: 1},
	})
	is.Equal(table.For(2), 1)
	is.Equal(table.For(board.Empty), 0)
	is.Equal(table.Total(), 1)
}

func TestScoreEmpty(t *testing.T) {
	is := is.New(t)
	table := Score(nil)
	is.Equal(table, ScoreTable{})
	is.Equal(table.Total(), 0)
	is.Equal(table.String(), "1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0")
}

func TestScoreOfDetect(t *testing.T) {
	is := is.New(t)
	g := mustGrid(t,
		"1111",
		"1221",
		"1221",
		"1111",
	)
	squares := Detect(g)
	table := Score(squares)
	is.Equal(table.Total(), TotalSize(squares))
	is.Equal(table.For(board.Empty), 0)
	// the outer ring and the inner block
	is.Equal(table.For(1), 3)
	is.Equal(table.For(2), 1)
	is.Equal(len(table.Map()), board.NumColors)
}
