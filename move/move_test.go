package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
)

type coordTestStruct struct {
	row    int
	col    int
	output string
}

var coordTests = []coordTestStruct{
	{0, 0, "Aa"},
	{7, 7, "Hh"},
	{15, 19, "Pt"},
	{5, 2, "Fc"},
	{15, 14, "Po"},
}

func TestToBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		calc := ToBoardGameCoords(tc.row, tc.col)
		if calc != tc.output {
			t.Errorf("For row=%v col=%v got %v, expected %v",
				tc.row, tc.col, calc, tc.output)
		}
	}
}

func TestFromBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		row, col, ok := FromBoardGameCoords(tc.output)
		if !ok || row != tc.row || col != tc.col {
			t.Errorf("For coord %v expected (%v, %v) got (%v, %v, %v)",
				tc.output, tc.row, tc.col, row, col, ok)
		}
	}
	for _, bad := range []string{"", "A", "Qa", "Au", "aA", "Aaa"} {
		_, _, ok := FromBoardGameCoords(bad)
		if ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	m, err := FromString("Aa123456h")
	is.NoErr(err)
	is.Equal(m.Row(), 0)
	is.Equal(m.Col(), 0)
	is.Equal(m.Tile(), Tile{1, 2, 3, 4, 5, 6})
	is.True(!m.Vertical())

	m, err = FromString("Hh216345h")
	is.NoErr(err)
	is.Equal(m.Row(), 7)
	is.Equal(m.Col(), 7)
	is.Equal(m.Tile(), Tile{2, 1, 6, 3, 4, 5})

	m, err = FromString("Fc326451h")
	is.NoErr(err)
	is.Equal(m.Row(), 5)
	is.Equal(m.Col(), 2)
	is.Equal(m.Tile(), Tile{3, 2, 6, 4, 5, 1})

	m, err = FromString("Pt111111v")
	is.NoErr(err)
	is.Equal(m.Row(), 15)
	is.Equal(m.Col(), 19)
	is.True(m.Vertical())
	// grammar only, the footprint is not checked here
	is.True(!m.Fits())
}

func TestFromStringDeterministic(t *testing.T) {
	is := is.New(t)
	for _, tok := range []string{"Aa123456h", "Hh216345h", "Ck654321v", "Pt111111v"} {
		m1, err := FromString(tok)
		is.NoErr(err)
		m2, err := FromString(tok)
		is.NoErr(err)
		is.Equal(m1, m2)
		is.True(m1.Equals(m2))
		is.Equal(m1.String(), tok)
	}
}

func TestFromStringInvalid(t *testing.T) {
	is := is.New(t)
	bad := []string{
		"",
		"Zz123456h",  // row letter out of range
		"Qa123456h",  // row just past P
		"Au123456h",  // col just past t
		"aA123456h",  // wrong case
		"Aa123456",   // missing orientation
		"Aa123456x",  // wrong orientation
		"Aa123456H",  // orientation is case sensitive
		"Aa12345h",   // too few digits
		"Aa1234567h", // too many digits
		"Aa123457h",  // digit out of range
		"Aa023456h",  // zero is not a tile color
		" Aa123456h", // no surrounding whitespace
		"Aa123456h\n",
	}
	for _, tok := range bad {
		m, err := FromString(tok)
		is.True(m == nil)
		is.True(errors.Is(err, ErrInvalidMoveFormat))
	}
}

func TestErrorCarriesToken(t *testing.T) {
	is := is.New(t)
	_, err := FromString("Zz123456h")
	is.Equal(err.Error(), `invalid move format: "Zz123456h"`)
}

func TestNewMove(t *testing.T) {
	is := is.New(t)
	m, err := NewMove(3, 6, Tile{1, 2, 3, 4, 5, 6}, true)
	is.NoErr(err)
	is.Equal(m.String(), "Dg123456v")

	_, err = NewMove(16, 0, Tile{1, 2, 3, 4, 5, 6}, false)
	is.True(errors.Is(err, ErrInvalidMoveFormat))
	_, err = NewMove(0, 0, Tile{1, 2, 3, 4, 5, 0}, false)
	is.True(errors.Is(err, ErrInvalidMoveFormat))
}

func TestFits(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		token string
		fits  bool
	}{
		{"Oo123456h", true},
		{"Pa123456h", false},
		{"Ap123456h", false},
		{"Kc123456v", true},
		{"Lc123456v", false},
		{"As123456v", true},
		{"At123456v", false},
	}
	for _, c := range cases {
		m, err := FromString(c.token)
		is.NoErr(err)
		is.Equal(m.Fits(), c.fits)
	}
}

func TestIsPermutation(t *testing.T) {
	is := is.New(t)
	is.True(Tile{1, 2, 3, 4, 5, 6}.IsPermutation())
	is.True(Tile{6, 5, 4, 3, 2, 1}.IsPermutation())
	is.True(!Tile{1, 1, 3, 4, 5, 6}.IsPermutation())
	is.True(!Tile{0, 2, 3, 4, 5, 6}.IsPermutation())
}

func TestRandom(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 200; i++ {
		m := RandomMove()
		is.True(m.Fits())
		is.True(m.Tile().IsPermutation())
		back, err := FromString(m.String())
		is.NoErr(err)
		is.True(back.Equals(m))
		is.True(board.InBounds(m.Row(), m.Col()))
	}
}
