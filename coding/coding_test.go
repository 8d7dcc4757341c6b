package coding

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
	"github.com/domino14/box/game"
	"github.com/domino14/box/move"
)

func TestTileToId(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		tile move.Tile
		id   int
	}{
		{move.Tile{1, 2, 3, 4, 5, 6}, 0},
		{move.Tile{2, 1, 3, 6, 5, 4}, 125},
		{move.Tile{6, 5, 4, 3, 2, 1}, 719},
	}
	for _, c := range cases {
		id, err := TileToId(c.tile)
		is.NoErr(err)
		is.Equal(id, c.id)
		tile, err := IdToTile(c.id)
		is.NoErr(err)
		is.Equal(tile, c.tile)
	}
	_, err := TileToId(move.Tile{1, 1, 3, 4, 5, 6})
	is.True(errors.Is(err, ErrNotPermutation))
	_, err = IdToTile(NumTileIds)
	is.True(errors.Is(err, ErrBadCode))
}

func TestAllTileIds(t *testing.T) {
	is := is.New(t)
	for id := 0; id < NumTileIds; id++ {
		tile, err := IdToTile(id)
		is.NoErr(err)
		is.True(tile.IsPermutation())
		back, err := TileToId(tile)
		is.NoErr(err)
		is.Equal(back, id)
	}
}

func TestPlacementToId(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		row, col int
		vertical bool
		id       int
	}{
		{0, 0, false, 0},
		{3, 6, false, 51},
		{14, 14, false, 224},
		{0, 0, true, 225},
		{3, 6, true, 288},
		{10, 18, true, 433},
	}
	for _, c := range cases {
		id, err := PlacementToId(c.row, c.col, c.vertical)
		is.NoErr(err)
		is.Equal(id, c.id)
		row, col, vertical, err := IdToPlacement(c.id)
		is.NoErr(err)
		is.Equal(row, c.row)
		is.Equal(col, c.col)
		is.Equal(vertical, c.vertical)
	}
	_, err := PlacementToId(15, 0, false)
	is.True(errors.Is(err, ErrPlacementRange))
	_, err = PlacementToId(0, 15, false)
	is.True(errors.Is(err, ErrPlacementRange))
	_, err = PlacementToId(11, 0, true)
	is.True(errors.Is(err, ErrPlacementRange))
	_, _, _, err = IdToPlacement(NumPlacementIds)
	is.True(errors.Is(err, ErrBadCode))
}

func TestEncodeMove(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		token string
		id    int
		code  string
	}{
		{"Aa123456h", 0, "AAA"},
		{"Ho314562v", 108438, "Xeu"},
		{"Ks654321v", 312479, "~nT"},
	}
	for _, c := range cases {
		m, err := move.FromString(c.token)
		is.NoErr(err)
		id, err := MoveToId(m)
		is.NoErr(err)
		is.Equal(id, c.id)
		code, err := EncodeMove(m)
		is.NoErr(err)
		is.Equal(code, c.code)

		back, err := DecodeMove(c.code)
		is.NoErr(err)
		is.True(back.Equals(m))
	}
}

func TestEncodeMoveErrors(t *testing.T) {
	is := is.New(t)
	m, err := move.FromString("Aa111111h")
	is.NoErr(err)
	_, err = EncodeMove(m)
	is.True(errors.Is(err, ErrNotPermutation))

	m, err = move.FromString("Pa123456h")
	is.NoErr(err)
	_, err = EncodeMove(m)
	is.True(errors.Is(err, ErrPlacementRange))

	for _, bad := range []string{"", "AA", "AAAA", "A A", "~~~"} {
		_, err = DecodeMove(bad)
		is.True(errors.Is(err, ErrBadCode))
	}
}

func TestRandomMovesRoundTrip(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 500; i++ {
		m := move.RandomMove()
		code, err := EncodeMove(m)
		is.NoErr(err)
		is.Equal(len(code), MoveCodeLength)
		back, err := DecodeMove(code)
		is.NoErr(err)
		is.True(back.Equals(m))
	}
}

func TestSecretColors(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		colors [2]board.Color
		code   string
	}{
		{[2]board.Color{0, 0}, "A"},
		{[2]board.Color{0, 1}, "B"},
		{[2]board.Color{4, 2}, "e"},
		{[2]board.Color{6, 6}, "w"},
	}
	for _, c := range cases {
		code, err := EncodeSecretColors(c.colors)
		is.NoErr(err)
		is.Equal(code, c.code)
		colors, err := DecodeSecretColors(c.code[0])
		is.NoErr(err)
		is.Equal(colors, c.colors)
	}
	_, err := EncodeSecretColors([2]board.Color{7, 1})
	is.True(errors.Is(err, game.ErrInvalidSecretColors))
	_, err = DecodeSecretColors('x')
	is.True(errors.Is(err, ErrBadCode))
	_, err = DecodeSecretColors('!')
	is.True(errors.Is(err, ErrBadCode))
}

func TestHistoryRoundTrip(t *testing.T) {
	is := is.New(t)
	h, err := game.NewHistory([2]string{"a", "b"}, [2]board.Color{4, 2},
		[]string{"Aa123456h", "Ho314562v", "Ks654321v"})
	is.NoErr(err)
	code, err := EncodeHistory(h)
	is.NoErr(err)
	is.Equal(code, "eAAAXeu~nT")

	back, err := DecodeHistory(code)
	is.NoErr(err)
	is.Equal(back.SecretColors, h.SecretColors)
	is.Equal(back.Tokens, h.Tokens)
	is.Equal(back.Players[0].Nickname, game.DefaultPlayer1)

	for _, bad := range []string{"", "eAA", "eAAAA", "AAAA"} {
		_, err = DecodeHistory(bad)
		is.True(err != nil)
	}
}
