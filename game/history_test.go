package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/box/board"
	"github.com/domino14/box/move"
)

func TestNewHistory(t *testing.T) {
	is := is.New(t)
	h, err := NewHistory([2]string{"a", "b"}, [2]board.Color{2, 5},
		[]string{"Aa123456h", "Hh216345h"})
	is.NoErr(err)
	is.Equal(len(h.Moves), 2)
	is.Equal(h.Tokens, []string{"Aa123456h", "Hh216345h"})
	is.Equal(h.Players[1].Nickname, "b")

	_, err = NewHistory([2]string{"a", "b"}, [2]board.Color{2, 5},
		[]string{"Aa123456h", "Zz123456h"})
	is.True(errors.Is(err, move.ErrInvalidMoveFormat))
	is.Equal(err.Error(), `move 2: invalid move format: "Zz123456h"`)

	_, err = NewHistory([2]string{"a", "b"}, [2]board.Color{0, 5}, nil)
	is.True(errors.Is(err, ErrInvalidSecretColors))
}

func TestValidateSecretColors(t *testing.T) {
	is := is.New(t)
	is.NoErr(ValidateSecretColors([2]board.Color{1, 6}))
	// both players may share a color
	is.NoErr(ValidateSecretColors([2]board.Color{3, 3}))
	is.True(errors.Is(ValidateSecretColors([2]board.Color{7, 1}), ErrInvalidSecretColors))
	is.True(errors.Is(ValidateSecretColors([2]board.Color{1, 0}), ErrInvalidSecretColors))
}

func TestRandomSecretColors(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 50; i++ {
		c := RandomSecretColors()
		is.NoErr(ValidateSecretColors(c))
		is.True(c[0] != c[1])
	}
}

func TestPlayerNamesFromFilename(t *testing.T) {
	is := is.New(t)
	is.Equal(PlayerNamesFromFilename("games/alice-vs-bob-transcript.txt"), [2]string{"alice", "bob"})
	is.Equal(PlayerNamesFromFilename("/tmp/x-vs-y-vs-z-transcript.txt"), [2]string{"x-vs-y", "z"})
	is.Equal(PlayerNamesFromFilename("game1.txt"), [2]string{DefaultPlayer1, DefaultPlayer2})
	is.Equal(PlayerNamesFromFilename("-vs-bob-transcript.txt"), [2]string{DefaultPlayer1, DefaultPlayer2})
}
