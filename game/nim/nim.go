// Package nim implements single-pile normal-play Nim: players alternately
// remove 1 to MaxTake sticks and whoever takes the last stick wins.
package nim

import (
	"fmt"

	"mctsbot/game"
)

// Rules implements game.Rules.
type Rules struct {
	MaxTake int
}

func New() Rules {
	return Rules{MaxTake: 3}
}

// Position is a Nim state. Mover is the identity to move, Next the one
// waiting.
type Position struct {
	Sticks int
	Mover  string
	Next   string
}

// Take removes N sticks from the pile.
type Take struct {
	N int
}

func (t Take) String() string {
	return fmt.Sprintf("take %d", t.N)
}

func (r Rules) LegalMoves(s game.State) []game.Move {
	p := s.(Position)
	most := r.MaxTake
	if p.Sticks < most {
		most = p.Sticks
	}
	moves := make([]game.Move, 0, most)
	for n := 1; n <= most; n++ {
		moves = append(moves, Take{N: n})
	}
	return moves
}

func (r Rules) Play(s game.State, m game.Move) game.State {
	p := s.(Position)
	take := m.(Take)
	return Position{Sticks: p.Sticks - take.N, Mover: p.Next, Next: p.Mover}
}

func (r Rules) Player(s game.State) string {
	return s.(Position).Mover
}

func (r Rules) IsOver(s game.State) bool {
	return s.(Position).Sticks == 0
}

func (r Rules) OwnedCells(game.State) map[game.Cell]string {
	return nil
}

func (r Rules) PointValues(game.State) map[string]float64 {
	return nil
}
