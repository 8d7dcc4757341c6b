package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/box/board"
	"github.com/domino14/box/move"
)

// PlacementsPerMove is the number of cells every move writes.
const PlacementsPerMove = 2 * board.TileLength

var ErrPlacementOutOfBounds = errors.New("tile placement does not fit on the board")

// A Turn is a move together with the cells it wrote, in the order they were
// written.
type Turn struct {
	Move       *move.Move                         `json:"-" yaml:"-"`
	Token      string                             `json:"move" yaml:"move"`
	Placements [PlacementsPerMove]board.Placement `json:"placements" yaml:"placements,flow"`
}

// A Snapshot is the board after some prefix of a game's moves.
type Snapshot struct {
	Grid  board.Grid `json:"-" yaml:"-"`
	Turns []Turn     `json:"turns" yaml:"turns"`
}

// Placements returns the twelve cells covered by m. Entry 2i is lane offset i
// of the first lane (tile[i]); entry 2i+1 is the mirrored second lane
// (tile[5-i]).
//
// Horizontal tiles cover rows row and row+1. Vertical tiles cover columns col
// and col+1, with lane offset 0 at the bottom row of the footprint.
func Placements(m *move.Move) [PlacementsPerMove]board.Placement {
	var ps [PlacementsPerMove]board.Placement
	tile := m.Tile()
	row, col := m.Row(), m.Col()
	last := board.TileLength - 1
	for i := 0; i < board.TileLength; i++ {
		if m.Vertical() {
			ps[2*i] = board.Placement{Row: row + last - i, Col: col, Color: tile[i]}
			ps[2*i+1] = board.Placement{Row: row + last - i, Col: col + 1, Color: tile[last-i]}
		} else {
			ps[2*i] = board.Placement{Row: row, Col: col + i, Color: tile[i]}
			ps[2*i+1] = board.Placement{Row: row + 1, Col: col + i, Color: tile[last-i]}
		}
	}
	return ps
}

// Replay plays moves, in order, onto an empty board. It keeps no state
// between calls: replaying any prefix of a game always gives the same
// snapshot as replaying it from scratch. Later moves overwrite whatever
// earlier moves left in the same cells.
func Replay(moves []*move.Move) (*Snapshot, error) {
	snap := &Snapshot{Turns: make([]Turn, 0, len(moves))}
	for idx, m := range moves {
		turn, err := playMove(&snap.Grid, m)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", idx+1, m, err)
		}
		snap.Turns = append(snap.Turns, turn)
	}
	log.Debug().Int("moves", len(moves)).Int("filled", snap.Grid.NumFilled()).
		Msg("replayed")
	return snap, nil
}

// playMove writes one move into g. The footprint is checked before any cell
// is written, so a failed move leaves g untouched.
func playMove(g *board.Grid, m *move.Move) (Turn, error) {
	if !m.Fits() {
		rows, cols := m.Footprint()
		return Turn{}, fmt.Errorf("%w: %dx%d tile at row %d col %d",
			ErrPlacementOutOfBounds, rows, cols, m.Row(), m.Col())
	}
	turn := Turn{Move: m, Token: m.String(), Placements: Placements(m)}
	for _, p := range turn.Placements {
		if err := g.Apply(p); err != nil {
			return Turn{}, err
		}
	}
	return turn, nil
}

// Extend returns a new snapshot with m played on top of s. s itself is not
// modified.
func (s *Snapshot) Extend(m *move.Move) (*Snapshot, error) {
	next := &Snapshot{Grid: s.Grid, Turns: make([]Turn, len(s.Turns), len(s.Turns)+1)}
	copy(next.Turns, s.Turns)
	turn, err := playMove(&next.Grid, m)
	if err != nil {
		return nil, fmt.Errorf("move %d (%s): %w", len(s.Turns)+1, m, err)
	}
	next.Turns = append(next.Turns, turn)
	return next, nil
}

// LastTurn returns the most recent turn, or nil for an empty board.
func (s *Snapshot) LastTurn() *Turn {
	if len(s.Turns) == 0 {
		return nil
	}
	return &s.Turns[len(s.Turns)-1]
}
