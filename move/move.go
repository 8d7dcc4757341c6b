package move

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/domino14/box/board"
)

var ErrInvalidMoveFormat = errors.New("invalid move format")

var reMove *regexp.Regexp

func init() {
	reMove = regexp.MustCompile(`^(?P<row>[A-P])(?P<col>[a-t])(?P<tile>[1-6]{6})(?P<dir>[hv])$`)
}

// A Tile is the six digits of a move in written order. The second lane of a
// placed tile holds the same digits mirrored.
type Tile [board.TileLength]board.Color

func (t Tile) String() string {
	b := make([]byte, len(t))
	for i, c := range t {
		b[i] = byte('0' + c)
	}
	return string(b)
}

// IsPermutation returns true if the tile uses every color exactly once.
func (t Tile) IsPermutation() bool {
	var seen [board.NumColors + 1]bool
	for _, c := range t {
		if !c.Valid() || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// Move is a single tile placement. It never changes after it is created.
type Move struct {
	row      int
	col      int
	tile     Tile
	vertical bool
}

// FromString decodes a move token such as "Hh216345h". Only the token
// grammar is checked; whether the tile fits on the board is left to the
// replay.
func FromString(token string) (*Move, error) {
	match := reMove.FindStringSubmatch(token)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, token)
	}
	m := &Move{
		row:      int(match[1][0] - 'A'),
		col:      int(match[2][0] - 'a'),
		vertical: match[4] == "v",
	}
	for i := 0; i < board.TileLength; i++ {
		m.tile[i] = board.Color(match[3][i] - '0')
	}
	return m, nil
}

// NewMove creates a move from its parts, rejecting anything the token
// grammar could not express.
func NewMove(row, col int, tile Tile, vertical bool) (*Move, error) {
	if !board.InBounds(row, col) {
		return nil, fmt.Errorf("%w: row %d col %d out of range", ErrInvalidMoveFormat, row, col)
	}
	for _, c := range tile {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: tile %v has color %d", ErrInvalidMoveFormat, tile, c)
		}
	}
	return &Move{row: row, col: col, tile: tile, vertical: vertical}, nil
}

func (m *Move) Row() int {
	return m.row
}

func (m *Move) Col() int {
	return m.col
}

func (m *Move) Tile() Tile {
	return m.tile
}

func (m *Move) Vertical() bool {
	return m.vertical
}

// Footprint returns the number of rows and columns the placed tile covers.
func (m *Move) Footprint() (rows, cols int) {
	if m.vertical {
		return board.TileLength, 2
	}
	return 2, board.TileLength
}

// Fits returns true if the whole footprint lies on the board.
func (m *Move) Fits() bool {
	rows, cols := m.Footprint()
	return m.row+rows <= board.Height && m.col+cols <= board.Width
}

// String returns the move in token notation; it is the inverse of FromString.
func (m *Move) String() string {
	dir := "h"
	if m.vertical {
		dir = "v"
	}
	return ToBoardGameCoords(m.row, m.col) + m.tile.String() + dir
}

func (m *Move) Equals(o *Move) bool {
	return *m == *o
}

// ToBoardGameCoords returns the two-letter coordinates of a cell, e.g. "Hh".
func ToBoardGameCoords(row, col int) string {
	return string([]byte{board.RowLabel(row), board.ColLabel(col)})
}

// FromBoardGameCoords parses two-letter coordinates. ok is false if they do
// not name a cell.
func FromBoardGameCoords(c string) (row, col int, ok bool) {
	if len(c) != 2 {
		return 0, 0, false
	}
	row = int(c[0]) - 'A'
	col = int(c[1]) - 'a'
	if !board.InBounds(row, col) {
		return 0, 0, false
	}
	return row, col, true
}
