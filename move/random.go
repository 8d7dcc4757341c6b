package move

import (
	"lukechampine.com/frand"

	"github.com/domino14/box/board"
)

// RandomTile returns a uniformly shuffled permutation of the six colors.
func RandomTile() Tile {
	var t Tile
	for i := range t {
		t[i] = board.Color(i + 1)
	}
	frand.Shuffle(len(t), func(i, j int) {
		t[i], t[j] = t[j], t[i]
	})
	return t
}

// RandomMove returns a random tile at a random position where it fits on the
// board. No other placement rules are considered.
func RandomMove() *Move {
	m := &Move{tile: RandomTile(), vertical: frand.Intn(2) == 1}
	rows, cols := m.Footprint()
	m.row = frand.Intn(board.Height - rows + 1)
	m.col = frand.Intn(board.Width - cols + 1)
	return m
}
