// Package domino implements Domineering: players alternately place 2x1
// dominoes on a grid, Vertical upright and Horizontal sideways, and the
// first player unable to place one loses. Being a normal-play game, it
// matches the searcher's win convention exactly, and covered cells map
// directly onto ownership scoring.
package domino

import (
	"fmt"

	"mctsbot/game"
)

// Player identities. Vertical moves first.
const (
	Vertical   = "vertical"
	Horizontal = "horizontal"
)

// Board implements game.Rules for a fixed grid size.
type Board struct {
	Width, Height int
}

func NewBoard(width, height int) Board {
	return Board{Width: width, Height: height}
}

// Position is a Domineering state. Play copies the cell slice, so positions
// behave as values.
type Position struct {
	mover string
	cells []string // row-major owner marks, "" for empty
}

// Start returns the empty board with Vertical to move.
func (b Board) Start() Position {
	return Position{mover: Vertical, cells: make([]string, b.Width*b.Height)}
}

// Move places a domino with its upper-left cell at X, Y.
type Move struct {
	X, Y int
	Dir  string
}

func (m Move) String() string {
	if m.Dir == Vertical {
		return fmt.Sprintf("V(%d,%d)", m.X, m.Y)
	}
	return fmt.Sprintf("H(%d,%d)", m.X, m.Y)
}

func (b Board) at(p Position, x, y int) string {
	return p.cells[y*b.Width+x]
}

func (b Board) LegalMoves(s game.State) []game.Move {
	p := s.(Position)
	var moves []game.Move
	if p.mover == Vertical {
		for y := 0; y+1 < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				if b.at(p, x, y) == "" && b.at(p, x, y+1) == "" {
					moves = append(moves, Move{X: x, Y: y, Dir: Vertical})
				}
			}
		}
		return moves
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x+1 < b.Width; x++ {
			if b.at(p, x, y) == "" && b.at(p, x+1, y) == "" {
				moves = append(moves, Move{X: x, Y: y, Dir: Horizontal})
			}
		}
	}
	return moves
}

func (b Board) Play(s game.State, m game.Move) game.State {
	p := s.(Position)
	move := m.(Move)

	cells := append([]string(nil), p.cells...)
	cells[move.Y*b.Width+move.X] = p.mover
	if move.Dir == Vertical {
		cells[(move.Y+1)*b.Width+move.X] = p.mover
	} else {
		cells[move.Y*b.Width+move.X+1] = p.mover
	}
	return Position{mover: opponent(p.mover), cells: cells}
}

func (b Board) Player(s game.State) string {
	return s.(Position).mover
}

func (b Board) IsOver(s game.State) bool {
	return len(b.LegalMoves(s)) == 0
}

func (b Board) OwnedCells(s game.State) map[game.Cell]string {
	p := s.(Position)
	owners := make(map[game.Cell]string)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if owner := b.at(p, x, y); owner != "" {
				owners[game.Cell{X: x, Y: y}] = owner
			}
		}
	}
	return owners
}

// PointValues returns nil: Domineering has no point tally, positions are
// compared by covered cells.
func (b Board) PointValues(game.State) map[string]float64 {
	return nil
}

func opponent(id string) string {
	if id == Vertical {
		return Horizontal
	}
	return Vertical
}
