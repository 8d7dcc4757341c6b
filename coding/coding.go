// Package coding packs a game into a short string of base-68 digits, three
// per move and one for the secret colors, suitable for a URL.
package coding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/box/board"
	"github.com/domino14/box/game"
	"github.com/domino14/box/move"
)

const Base68Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789,-.^_~"

const (
	base = len(Base68Digits)

	// NumTileIds is the number of permutations of six colors.
	NumTileIds = 720
	// horizontal tiles fit at rows 0..14, cols 0..14
	numHorizontal = (board.Height - 1) * (board.Width - board.TileLength + 1)
	// vertical tiles fit at rows 0..10, cols 0..18
	numVertical = (board.Height - board.TileLength + 1) * (board.Width - 1)
	// NumPlacementIds is the number of positions where a tile fits.
	NumPlacementIds = numHorizontal + numVertical
	// NumMoveIds is the number of distinct encodable moves.
	NumMoveIds = NumTileIds * NumPlacementIds

	// MoveCodeLength is the number of digits in one encoded move.
	MoveCodeLength = 3
)

var (
	ErrNotPermutation = errors.New("tile is not a permutation of the six colors")
	ErrPlacementRange = errors.New("tile does not fit on the board")
	ErrBadCode        = errors.New("malformed code")
)

// TileToId returns the rank of a permutation tile, 0 through 719, in
// lexicographic order.
func TileToId(tile move.Tile) (int, error) {
	if !tile.IsPermutation() {
		return 0, fmt.Errorf("%w: %v", ErrNotPermutation, tile)
	}
	values := []board.Color{1, 2, 3, 4, 5, 6}
	id := 0
	for _, v := range tile {
		i := 0
		for values[i] != v {
			i++
		}
		id = len(values)*id + i
		values = append(values[:i], values[i+1:]...)
	}
	return id, nil
}

// IdToTile is the inverse of TileToId.
func IdToTile(id int) (move.Tile, error) {
	var tile move.Tile
	if id < 0 || id >= NumTileIds {
		return tile, fmt.Errorf("%w: tile id %d", ErrBadCode, id)
	}
	var indices [board.TileLength]int
	for i := 0; i < board.TileLength; i++ {
		indices[board.TileLength-1-i] = id % (i + 1)
		id /= i + 1
	}
	values := []board.Color{1, 2, 3, 4, 5, 6}
	for i, idx := range indices {
		tile[i] = values[idx]
		values = append(values[:idx], values[idx+1:]...)
	}
	return tile, nil
}

// PlacementToId numbers the positions where a tile fits: horizontal
// placements first, row-major, then vertical ones.
func PlacementToId(row, col int, vertical bool) (int, error) {
	if vertical {
		if row < 0 || row > board.Height-board.TileLength || col < 0 || col > board.Width-2 {
			return 0, fmt.Errorf("%w: vertical at row %d col %d", ErrPlacementRange, row, col)
		}
		return numHorizontal + (board.Width-1)*row + col, nil
	}
	if row < 0 || row > board.Height-2 || col < 0 || col > board.Width-board.TileLength {
		return 0, fmt.Errorf("%w: horizontal at row %d col %d", ErrPlacementRange, row, col)
	}
	return (board.Width-board.TileLength+1)*row + col, nil
}

// IdToPlacement is the inverse of PlacementToId.
func IdToPlacement(id int) (row, col int, vertical bool, err error) {
	hcols := board.Width - board.TileLength + 1
	switch {
	case id < 0 || id >= NumPlacementIds:
		return 0, 0, false, fmt.Errorf("%w: placement id %d", ErrBadCode, id)
	case id < numHorizontal:
		return id / hcols, id % hcols, false, nil
	}
	id -= numHorizontal
	return id / (board.Width - 1), id % (board.Width - 1), true, nil
}

// MoveToId combines the tile and placement ids of m.
func MoveToId(m *move.Move) (int, error) {
	tid, err := TileToId(m.Tile())
	if err != nil {
		return 0, err
	}
	pid, err := PlacementToId(m.Row(), m.Col(), m.Vertical())
	if err != nil {
		return 0, err
	}
	return NumPlacementIds*tid + pid, nil
}

// IdToMove is the inverse of MoveToId.
func IdToMove(id int) (*move.Move, error) {
	if id < 0 || id >= NumMoveIds {
		return nil, fmt.Errorf("%w: move id %d", ErrBadCode, id)
	}
	tile, err := IdToTile(id / NumPlacementIds)
	if err != nil {
		return nil, err
	}
	row, col, vertical, err := IdToPlacement(id % NumPlacementIds)
	if err != nil {
		return nil, err
	}
	return move.NewMove(row, col, tile, vertical)
}

func digitValue(ch byte) (int, error) {
	idx := strings.IndexByte(Base68Digits, ch)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q is not a base-68 digit", ErrBadCode, ch)
	}
	return idx, nil
}

// EncodeMove returns the three-digit code of m.
func EncodeMove(m *move.Move) (string, error) {
	id, err := MoveToId(m)
	if err != nil {
		return "", err
	}
	return string([]byte{
		Base68Digits[id/(base*base)],
		Base68Digits[id/base%base],
		Base68Digits[id%base],
	}), nil
}

// DecodeMove is the inverse of EncodeMove.
func DecodeMove(code string) (*move.Move, error) {
	if len(code) != MoveCodeLength {
		return nil, fmt.Errorf("%w: move code %q", ErrBadCode, code)
	}
	id := 0
	for i := 0; i < MoveCodeLength; i++ {
		v, err := digitValue(code[i])
		if err != nil {
			return nil, err
		}
		id = id*base + v
	}
	return IdToMove(id)
}

// EncodeSecretColors packs both colors into one digit. 0 is allowed for a
// color that is not known.
func EncodeSecretColors(colors [2]board.Color) (string, error) {
	for _, c := range colors {
		if c > board.NumColors {
			return "", fmt.Errorf("%w: %d", game.ErrInvalidSecretColors, c)
		}
	}
	return string(Base68Digits[(board.NumColors+1)*int(colors[0])+int(colors[1])]), nil
}

// DecodeSecretColors is the inverse of EncodeSecretColors.
func DecodeSecretColors(ch byte) ([2]board.Color, error) {
	v, err := digitValue(ch)
	if err != nil {
		return [2]board.Color{}, err
	}
	n := board.NumColors + 1
	if v >= n*n {
		return [2]board.Color{}, fmt.Errorf("%w: %q is not a secret color code", ErrBadCode, ch)
	}
	return [2]board.Color{board.Color(v / n), board.Color(v % n)}, nil
}

// EncodeHistory returns the compact code of a whole game.
func EncodeHistory(h *game.History) (string, error) {
	var s strings.Builder
	sc, err := EncodeSecretColors(h.SecretColors)
	if err != nil {
		return "", err
	}
	s.WriteString(sc)
	for idx, m := range h.Moves {
		code, err := EncodeMove(m)
		if err != nil {
			return "", fmt.Errorf("move %d (%s): %w", idx+1, m, err)
		}
		s.WriteString(code)
	}
	return s.String(), nil
}

// DecodeHistory is the inverse of EncodeHistory. Player names are not part
// of the code and get their defaults.
func DecodeHistory(code string) (*game.History, error) {
	if len(code) < 1 || (len(code)-1)%MoveCodeLength != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrBadCode, len(code))
	}
	colors, err := DecodeSecretColors(code[0])
	if err != nil {
		return nil, err
	}
	h, err := game.NewHistory([2]string{game.DefaultPlayer1, game.DefaultPlayer2}, colors, nil)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(code); i += MoveCodeLength {
		m, err := DecodeMove(code[i : i+MoveCodeLength])
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", (i-1)/MoveCodeLength+1, err)
		}
		h.AddMove(m)
	}
	return h, nil
}
