// Package scoring finds squares on a finished or partial board and totals
// them per color.
package scoring

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/box/board"
)

// A Square is an axis-aligned square whose four corner cells share Color.
// Cells inside the square play no part.
type Square struct {
	Color board.Color `json:"color" yaml:"color"`
	R1    int         `json:"r1" yaml:"r1"`
	C1    int         `json:"c1" yaml:"c1"`
	R2    int         `json:"r2" yaml:"r2"`
	C2    int         `json:"c2" yaml:"c2"`
	Size  int         `json:"size" yaml:"size"`
}

// Coords returns the square in corner notation, e.g. "AaCc".
func (s Square) Coords() string {
	return string([]byte{
		board.RowLabel(s.R1), board.ColLabel(s.C1),
		board.RowLabel(s.R2), board.ColLabel(s.C2),
	})
}

func (s Square) String() string {
	return fmt.Sprintf("%s color=%d size=%d", s.Coords(), s.Color, s.Size)
}

// Detect returns every square on g. Anchors are visited row by row, and for
// each anchor every size is tried, smallest first, so nested squares sharing
// a top-left corner are all reported.
func Detect(g board.Grid) []Square {
	var squares []Square
	for r1 := 0; r1 < board.Height; r1++ {
		for c1 := 0; c1 < board.Width; c1++ {
			color := g[r1][c1]
			if color == board.Empty {
				continue
			}
			for k := 1; r1+k < board.Height && c1+k < board.Width; k++ {
				r2, c2 := r1+k, c1+k
				if g[r1][c2] == color && g[r2][c1] == color && g[r2][c2] == color {
					squares = append(squares, Square{
						Color: color, R1: r1, C1: c1, R2: r2, C2: c2, Size: k,
					})
				}
			}
		}
	}
	return squares
}

// SortBySizeDesc returns a copy of squares, largest first. Squares of equal
// size keep their detection order.
func SortBySizeDesc(squares []Square) []Square {
	sorted := make([]Square, len(squares))
	copy(sorted, squares)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})
	return sorted
}

// ByColor returns only the squares of one color, in their original order.
func ByColor(squares []Square, color board.Color) []Square {
	return lo.Filter(squares, func(s Square, _ int) bool {
		return s.Color == color
	})
}
