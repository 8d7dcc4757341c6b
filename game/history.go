package game

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"lukechampine.com/frand"

	"github.com/domino14/box/board"
	"github.com/domino14/box/move"
)

var ErrInvalidSecretColors = errors.New("secret colors must be between 1 and 6")

const (
	DefaultPlayer1 = "Player 1"
	DefaultPlayer2 = "Player 2"
)

var reTranscriptName = regexp.MustCompile(`^(.*)-vs-(.*)-transcript\.txt$`)

// PlayerInfo describes one of the two players.
type PlayerInfo struct {
	Nickname string `json:"nickname" yaml:"nickname"`
}

// History is everything needed to replay one game: the players, their
// secret colors and the moves in play order.
type History struct {
	Players      [2]PlayerInfo  `json:"players" yaml:"players"`
	SecretColors [2]board.Color `json:"secret_colors" yaml:"secret_colors"`
	Moves        []*move.Move   `json:"-" yaml:"-"`
	// Tokens is Moves in token notation, kept alongside for serialization.
	Tokens []string `json:"moves" yaml:"moves"`
	Source string   `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewHistory builds a history from move tokens. The first bad token aborts
// the whole history.
func NewHistory(players [2]string, colors [2]board.Color, tokens []string) (*History, error) {
	if err := ValidateSecretColors(colors); err != nil {
		return nil, err
	}
	h := &History{
		Players:      [2]PlayerInfo{{Nickname: players[0]}, {Nickname: players[1]}},
		SecretColors: colors,
		Moves:        make([]*move.Move, 0, len(tokens)),
		Tokens:       make([]string, 0, len(tokens)),
	}
	for idx, tok := range tokens {
		m, err := move.FromString(tok)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", idx+1, err)
		}
		h.AddMove(m)
	}
	return h, nil
}

// AddMove appends a move to the history.
func (h *History) AddMove(m *move.Move) {
	h.Moves = append(h.Moves, m)
	h.Tokens = append(h.Tokens, m.String())
}

// ValidateSecretColors rejects any secret color outside 1..6.
func ValidateSecretColors(colors [2]board.Color) error {
	for i, c := range colors {
		if !c.Valid() {
			return fmt.Errorf("%w: player %d has %d", ErrInvalidSecretColors, i+1, c)
		}
	}
	return nil
}

// RandomSecretColors picks two different colors.
func RandomSecretColors() [2]board.Color {
	perm := frand.Perm(board.NumColors)
	return [2]board.Color{board.Color(perm[0] + 1), board.Color(perm[1] + 1)}
}

// PlayerNamesFromFilename extracts player names from a transcript filename
// of the form "alice-vs-bob-transcript.txt". Any other name gives the
// default player names.
func PlayerNamesFromFilename(path string) [2]string {
	match := reTranscriptName.FindStringSubmatch(filepath.Base(path))
	if match == nil || match[1] == "" || match[2] == "" {
		return [2]string{DefaultPlayer1, DefaultPlayer2}
	}
	return [2]string{match[1], match[2]}
}
