package scoring

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/box/board"
)

// ScoreTable holds the total square size per color, indexed by color.
// Index 0 (empty) is always zero.
type ScoreTable [board.NumColors + 1]int

// Score sums square sizes per color. Squares whose color is not a tile
// color are ignored.
func Score(squares []Square) ScoreTable {
	var t ScoreTable
	for _, s := range squares {
		if !s.Color.Valid() {
			continue
		}
		t[s.Color] += s.Size
	}
	return t
}

func (t ScoreTable) For(c board.Color) int {
	if int(c) >= len(t) {
		return 0
	}
	return t[c]
}

// Total is the sum over every color.
func (t ScoreTable) Total() int {
	return lo.Sum(t[:])
}

// Map returns the non-empty colors and their totals, for serialization.
func (t ScoreTable) Map() map[int]int {
	m := make(map[int]int, board.NumColors)
	for c := 1; c <= board.NumColors; c++ {
		m[c] = t[c]
	}
	return m
}

func (t ScoreTable) String() string {
	parts := make([]string, 0, board.NumColors)
	for c := 1; c <= board.NumColors; c++ {
		parts = append(parts, fmt.Sprintf("%d: %d", c, t[c]))
	}
	return strings.Join(parts, ", ")
}

// TotalSize is the sum of the sizes of squares.
func TotalSize(squares []Square) int {
	return lo.SumBy(squares, func(s Square) int { return s.Size })
}
