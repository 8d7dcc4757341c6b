package board

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
)

const (
	// Height is the number of rows on the board (A through P).
	Height = 16
	// Width is the number of columns on the board (a through t).
	Width = 20
	// NumColors is the number of distinct tile colors.
	NumColors = 6
	// TileLength is the number of digits on one lane of a tile.
	TileLength = 6
)

var (
	ErrOutOfBounds  = errors.New("coordinates are outside the board")
	ErrInvalidColor = errors.New("color must be between 0 and 6")
)

// A Color is the value of a single cell. Empty cells hold 0; tiles only ever
// carry colors 1 through NumColors.
type Color uint8

const Empty Color = 0

// Valid returns true for tile colors; Empty is not a valid tile color.
func (c Color) Valid() bool {
	return c >= 1 && c <= NumColors
}

// A Placement is a single cell written by a move.
type Placement struct {
	Row   int   `json:"row" yaml:"row"`
	Col   int   `json:"col" yaml:"col"`
	Color Color `json:"color" yaml:"color"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%c%c=%d", RowLabel(p.Row), ColLabel(p.Col), p.Color)
}

// A Grid is the full board. It is a value type: assigning or returning a Grid
// copies every cell, so snapshots never share state.
type Grid [Height][Width]Color

func InBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

func (g *Grid) At(row, col int) Color {
	return g[row][col]
}

// Set writes a color into a cell, overwriting whatever was there.
func (g *Grid) Set(row, col int, c Color) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, row, col)
	}
	if c > NumColors {
		return fmt.Errorf("%w: got %d", ErrInvalidColor, c)
	}
	g[row][col] = c
	return nil
}

// Apply writes a placement into the grid.
func (g *Grid) Apply(p Placement) error {
	return g.Set(p.Row, p.Col, p.Color)
}

func (g *Grid) Equals(g2 *Grid) bool {
	return *g == *g2
}

// NumFilled returns the number of non-empty cells.
func (g *Grid) NumFilled() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// Rows returns the grid as a slice of int rows, for serialization.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, Height)
	for r := range g {
		rows[r] = make([]int, Width)
		for c := range g[r] {
			rows[r][c] = int(g[r][c])
		}
	}
	return rows
}

// Hash returns a fingerprint of the cell contents. Two grids with the same
// colors in the same cells hash identically.
func (g *Grid) Hash() uint64 {
	buf := make([]byte, 0, Height*Width)
	for r := range g {
		for c := range g[r] {
			buf = append(buf, byte(g[r][c]))
		}
	}
	return xxhash.Sum64(buf)
}

// RowLabel returns the letter used for a row in move notation.
func RowLabel(row int) byte {
	return byte('A' + row)
}

// ColLabel returns the letter used for a column in move notation.
func ColLabel(col int) byte {
	return byte('a' + col)
}
