package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSetAndAt(t *testing.T) {
	is := is.New(t)
	var g Grid
	is.NoErr(g.Set(0, 0, 3))
	is.NoErr(g.Set(Height-1, Width-1, 6))
	is.Equal(g.At(0, 0), Color(3))
	is.Equal(g.At(Height-1, Width-1), Color(6))
	is.Equal(g.NumFilled(), 2)

	err := g.Set(Height, 0, 1)
	is.True(errors.Is(err, ErrOutOfBounds))
	err = g.Set(0, -1, 1)
	is.True(errors.Is(err, ErrOutOfBounds))
	err = g.Set(0, 0, 7)
	is.True(errors.Is(err, ErrInvalidColor))
	// failed writes leave the grid alone
	is.Equal(g.At(0, 0), Color(3))
}

func TestGridIsValue(t *testing.T) {
	is := is.New(t)
	var g Grid
	is.NoErr(g.Set(4, 4, 2))
	snapshot := g
	is.NoErr(g.Set(4, 4, 5))
	is.Equal(snapshot.At(4, 4), Color(2))
	is.True(!snapshot.Equals(&g))
}

func TestHash(t *testing.T) {
	is := is.New(t)
	var g1, g2 Grid
	is.Equal(g1.Hash(), g2.Hash())
	is.NoErr(g1.Set(7, 7, 1))
	is.True(g1.Hash() != g2.Hash())
	is.NoErr(g2.Set(7, 7, 1))
	is.Equal(g1.Hash(), g2.Hash())
}

func TestGridFromRows(t *testing.T) {
	is := is.New(t)
	g, err := GridFromRows([]string{
		"123456",
		"654321",
		"..1",
	})
	is.NoErr(err)
	is.Equal(g.At(0, 5), Color(6))
	is.Equal(g.At(1, 0), Color(6))
	is.Equal(g.At(2, 2), Color(1))
	is.Equal(g.At(2, 0), Empty)
	is.Equal(g.NumFilled(), 13)

	_, err = GridFromRows([]string{"12x"})
	is.True(errors.Is(err, ErrInvalidColor))
	_, err = GridFromRows([]string{strings.Repeat("1", Width+1)})
	is.True(errors.Is(err, ErrOutOfBounds))
}

func TestPlainText(t *testing.T) {
	is := is.New(t)
	g, err := GridFromRows([]string{"12"})
	is.NoErr(err)
	lines := strings.Split(strings.TrimSuffix(g.PlainText(), "\n"), "\n")
	is.Equal(len(lines), Height)
	is.Equal(lines[0], "1 2"+strings.Repeat(" 0", Width-2))
	is.Equal(lines[1], "0"+strings.Repeat(" 0", Width-1))
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	ColorSupport = false
	defer func() { ColorSupport = true }()
	var g Grid
	is.NoErr(g.Set(0, 0, 4))
	text := g.ToDisplayText()
	is.True(strings.Contains(text, " A|4 . ."))
	is.True(strings.Contains(text, " P|. ."))
	is.True(strings.HasPrefix(text, "   a b c"))
}
