package board

import (
	"fmt"
	"os"
	"strings"
)

var (
	ColorSupport = os.Getenv("BOX_DISABLE_COLOR") != "on"
)

func (c Color) displayString() string {
	if c == Empty {
		return "."
	}
	if !ColorSupport {
		return fmt.Sprintf("%d", c)
	}
	switch c {
	case 1:
		return fmt.Sprintf("\033[31m%d\033[0m", c)
	case 2:
		return fmt.Sprintf("\033[33m%d\033[0m", c)
	case 3:
		return fmt.Sprintf("\033[32m%d\033[0m", c)
	case 4:
		return fmt.Sprintf("\033[36m%d\033[0m", c)
	case 5:
		return fmt.Sprintf("\033[34m%d\033[0m", c)
	case 6:
		return fmt.Sprintf("\033[35m%d\033[0m", c)
	default:
		return "?"
	}
}

// ToDisplayText renders the grid with row letters on the left and column
// letters on top.
func (g *Grid) ToDisplayText() string {
	var str strings.Builder
	str.WriteString("   ")
	for c := 0; c < Width; c++ {
		str.WriteByte(ColLabel(c))
		str.WriteByte(' ')
	}
	str.WriteString("\n")
	str.WriteString("   " + strings.Repeat("-", Width*2) + "\n")
	for r := 0; r < Height; r++ {
		str.WriteString(fmt.Sprintf(" %c|", RowLabel(r)))
		for c := 0; c < Width; c++ {
			str.WriteString(g[r][c].displayString())
			str.WriteByte(' ')
		}
		str.WriteString("|\n")
	}
	str.WriteString("   " + strings.Repeat("-", Width*2) + "\n")
	return str.String()
}

// PlainText renders the grid as space-separated digits, one row per line,
// the same layout the score-grid tool prints.
func (g *Grid) PlainText() string {
	var str strings.Builder
	for r := range g {
		for c := range g[r] {
			if c > 0 {
				str.WriteByte(' ')
			}
			str.WriteByte(byte('0' + g[r][c]))
		}
		str.WriteByte('\n')
	}
	return str.String()
}

// GridFromRows builds a grid from up to Height rows of digits. Spaces are
// ignored and '.' means empty; missing rows and columns stay empty.
func GridFromRows(rows []string) (Grid, error) {
	var g Grid
	if len(rows) > Height {
		return g, fmt.Errorf("%w: %d rows", ErrOutOfBounds, len(rows))
	}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			switch {
			case ch == ' ':
				continue
			case ch == '.':
				c++
				continue
			case ch >= '0' && ch <= '9':
				if err := g.Set(r, c, Color(ch-'0')); err != nil {
					return g, err
				}
				c++
			default:
				return g, fmt.Errorf("%w: unexpected character %q in row %d",
					ErrInvalidColor, ch, r)
			}
		}
	}
	return g, nil
}
