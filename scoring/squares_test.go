package scoring

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
)

func mustGrid(t *testing.T, rows ...string) board.Grid {
	t.Helper()
	g, err := board.GridFromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDetectEmpty(t *testing.T) {
	is := is.New(t)
	var g board.Grid
	is.Equal(len(Detect(g)), 0)
}

func TestDetectSingleTile(t *testing.T) {
	is := is.New(t)
	// the board after Aa123456h
	g := mustGrid(t,
		"123456",
		"654321",
	)
	is.Equal(len(Detect(g)), 0)
}

func TestDetectUnitSquare(t *testing.T) {
	is := is.New(t)
	g := mustGrid(t,
		"33",
		"33",
	)
	squares := Detect(g)
	is.Equal(len(squares), 1)
	is.Equal(squares[0], Square{Color: 3, R1: 0, C1: 0, R2: 1, C2: 1, Size: 1})
	is.Equal(squares[0].Coords(), "AaBb")
}

func TestDetectCornersOnly(t *testing.T) {
	is := is.New(t)
	g := mustGrid(t,
		"5..5",
		".12.",
		".34.",
		"5..5",
	)
	squares := Detect(g)
	is.Equal(len(squares), 1)
	is.Equal(squares[0].Size, 3)
	is.Equal(squares[0].Color, board.Color(5))
	is.Equal(squares[0].Coords(), "AaDd")
}

func TestDetectNested(t *testing.T) {
	is := is.New(t)
	g := mustGrid(t,
		"2.2.2",
		".....",
		"2.2.2",
		".....",
		"2.2.2",
	)
	squares := Detect(g)
	// four of size 2 plus one of size 4 anchored at Aa
	is.Equal(len(squares), 5)
	is.Equal(squares[0], Square{Color: 2, R1: 0, C1: 0, R2: 2, C2: 2, Size: 2})
	is.Equal(squares[1], Square{Color: 2, R1: 0, C1: 0, R2: 4, C2: 4, Size: 4})
	is.Equal(TotalSize(squares), 12)

	sorted := SortBySizeDesc(squares)
	is.Equal(sorted[0].Size, 4)
	// the input is not reordered
	is.Equal(squares[1].Size, 4)
	is.Equal(squares[0].Size, 2)
}

func TestDetectEdges(t *testing.T) {
	is := is.New(t)
	var g board.Grid
	for _, rc := range [][2]int{
		{0, 0}, {0, board.Height - 1},
		{board.Height - 1, 0}, {board.Height - 1, board.Height - 1},
		{0, board.Width - 1}, {0, board.Width - board.Height},
		{board.Height - 1, board.Width - 1}, {board.Height - 1, board.Width - board.Height},
	} {
		is.NoErr(g.Set(rc[0], rc[1], 6))
	}
	squares := Detect(g)
	is.Equal(len(squares), 2)
	for _, s := range squares {
		is.Equal(s.Size, board.Height-1)
	}
	is.Equal(squares[1].Coords(), "AePt")
}

func TestDetectInvariants(t *testing.T) {
	is := is.New(t)
	g := mustGrid(t,
		"1111",
		"1221",
		"1221",
		"1111",
	)
	squares := Detect(g)
	is.True(len(squares) > 0)
	for _, s := range squares {
		is.True(s.Size >= 1)
		is.Equal(s.R2-s.R1, s.Size)
		is.Equal(s.C2-s.C1, s.Size)
		is.True(s.Color.Valid())
		for _, c := range []board.Color{g.At(s.R1, s.C1), g.At(s.R1, s.C2), g.At(s.R2, s.C1), g.At(s.R2, s.C2)} {
			is.Equal(c, s.Color)
		}
	}
	is.Equal(len(ByColor(squares, 2)), 1)
}

func TestByColor(t *testing.T) {
	is := is.New(t)
	squares := []Square{
		{Color: 1, R1: 0, C1: 0, R2: 1, C2: 1, Size: 1},
		{Color: 2, R1: 0, C1: 2, R2: 2, C2: 4, Size: 2},
		{Color: 1, R1: 3, C1: 3, R2: 6, C2: 6, Size: 3},
	}
	is.Equal(ByColor(squares, 1), []Square{squares[0], squares[2]})
	is.Equal(ByColor(squares, 2), []Square{squares[1]})
	is.Equal(len(ByColor(squares, 3)), 0)
	is.Equal(len(ByColor(nil, 1)), 0)
}
