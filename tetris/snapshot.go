package tetris

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Snapshot is a read-only copy of the engine state for renderers.
type Snapshot struct {
	Width  int
	Height int
	Board  [][]PieceType // [row][column] locked cells

	Active      Piece
	ActiveCells [4]Point
	GhostY      int // row the active piece would land on after a hard drop
	GhostCells  [4]Point
	Ghost       bool

	Next PieceType
	Held PieceType

	Score        int
	Lines        int
	Level        int
	DropInterval time.Duration
	Status       Status
}

// Snapshot copies the current state. The ghost is projected straight down
// from the active piece and has no effect on the engine.
func (e *Engine) Snapshot() Snapshot {
	ghost := e.active
	ghost.Y += e.board.dropDistance(e.active)

	return Snapshot{
		Width:        e.cfg.Width,
		Height:       e.cfg.Height,
		Board:        e.board.rows(),
		Active:       e.active,
		ActiveCells:  e.active.Cells(),
		GhostY:       ghost.Y,
		GhostCells:   ghost.Cells(),
		Ghost:        e.cfg.Ghost,
		Next:         e.bag.peek(),
		Held:         e.hold,
		Score:        e.score,
		Lines:        e.lines,
		Level:        e.level,
		DropInterval: e.dropInterval,
		Status:       e.status,
	}
}

// CellKind says what occupies a projected cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellLocked
	CellGhost
	CellActive
)

type Cell struct {
	Type PieceType
	Kind CellKind
}

// Cells merges the locked board with the ghost and active piece. Locked
// cells hide the ghost, the active piece is drawn over everything, and
// neither the ghost nor the active piece is shown after game over.
func (s Snapshot) Cells() [][]Cell {
	out := make([][]Cell, s.Height)
	for y := range out {
		out[y] = make([]Cell, s.Width)
		for x, t := range s.Board[y] {
			if t != None {
				out[y][x] = Cell{Type: t, Kind: CellLocked}
			}
		}
	}
	if s.Status == GameOver {
		return out
	}

	if s.Ghost {
		for _, c := range s.GhostCells {
			if s.onBoard(c) && out[c.Y][c.X].Kind == CellEmpty {
				out[c.Y][c.X] = Cell{Type: s.Active.Type, Kind: CellGhost}
			}
		}
	}
	for _, c := range s.ActiveCells {
		if s.onBoard(c) {
			out[c.Y][c.X] = Cell{Type: s.Active.Type, Kind: CellActive}
		}
	}
	return out
}

func (s Snapshot) onBoard(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// String draws the projected cells: '.' empty, piece letter for locked,
// ':' ghost, '@' active.
func (s Snapshot) String() string {
	var sb strings.Builder
	for _, row := range s.Cells() {
		for _, c := range row {
			switch c.Kind {
			case CellEmpty:
				sb.WriteByte('.')
			case CellLocked:
				sb.WriteString(c.Type.String())
			case CellGhost:
				sb.WriteByte(':')
			case CellActive:
				sb.WriteByte('@')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	ErrOverlap     = errors.New("active piece overlaps a locked cell")
	ErrOutOfBounds = errors.New("active piece outside the board columns")
)

// Validate checks that the active piece sits inside the board columns and
// above the floor without overlapping locked cells. A game that ended by
// block out legitimately overlaps, so GameOver snapshots are not checked.
func (s Snapshot) Validate() error {
	if s.Status == GameOver {
		return nil
	}
	for _, c := range s.ActiveCells {
		if c.X < 0 || c.X >= s.Width || c.Y >= s.Height {
			return fmt.Errorf("%w: cell (%d,%d)", ErrOutOfBounds, c.X, c.Y)
		}
		if c.Y >= 0 && s.Board[c.Y][c.X] != None {
			return fmt.Errorf("%w: cell (%d,%d) holds %s", ErrOverlap, c.X, c.Y, s.Board[c.Y][c.X])
		}
	}
	return nil
}
