package searcher

import (
	"math"

	"mctsbot/game"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// A Rollout plays a sampled game from state to a terminal position. The
// identity argument names the player the search is deciding for; rollouts
// are free to ignore it.
type Rollout interface {
	Play(rules game.Rules, state game.State, identity string, rng *rand.Rand) (game.State, error)
}

// RandomRollout plays uniformly random moves until the game ends. It keeps
// no state between calls, which makes it the cheap baseline strategy.
type RandomRollout struct{}

func (RandomRollout) Play(rules game.Rules, state game.State, identity string, rng *rand.Rand) (game.State, error) {
	for !rules.IsOver(state) {
		moves := rules.LegalMoves(state)
		if len(moves) == 0 {
			return nil, &game.RulesError{Op: "LegalMoves", Detail: "no legal moves on a non-terminal state"}
		}
		state = rules.Play(state, moves[rng.Intn(len(moves))])
	}
	return state, nil
}

// SampledRollout plays informed moves for the searching identity and
// uniformly random moves for the opponent. On the identity's turn every
// legal move is scored by averaging the outcomes of Samples independent
// random playouts capped at Depth plies each. The work per ply grows
// roughly Samples-fold with the branching factor, trading rollout count
// for rollout quality.
type SampledRollout struct {
	Samples int
	Depth   int
}

func NewSampledRollout() *SampledRollout {
	return &SampledRollout{Samples: 10, Depth: 5}
}

func (r *SampledRollout) Play(rules game.Rules, state game.State, identity string, rng *rand.Rand) (game.State, error) {
	for !rules.IsOver(state) {
		moves := rules.LegalMoves(state)
		if len(moves) == 0 {
			return nil, &game.RulesError{Op: "LegalMoves", Detail: "no legal moves on a non-terminal state"}
		}

		var move game.Move
		if rules.Player(state) == identity {
			m, err := r.pickMove(rules, state, identity, moves, rng)
			if err != nil {
				return nil, err
			}
			move = m
		} else {
			move = moves[rng.Intn(len(moves))]
		}
		state = rules.Play(state, move)
	}
	return state, nil
}

// pickMove scores every candidate move by sampled playouts and keeps the
// one with the strictly greatest average; the first candidate wins ties.
func (r *SampledRollout) pickMove(rules game.Rules, state game.State, identity string, moves []game.Move, rng *rand.Rand) (game.Move, error) {
	best := moves[0]
	bestScore := math.Inf(-1)
	samples := make([]float64, r.Samples)

	for _, move := range moves {
		next := rules.Play(state, move)
		for i := range samples {
			end, err := r.sample(rules, next, rng)
			if err != nil {
				return nil, err
			}
			samples[i] = outcome(rules, end, identity)
		}
		if score := stat.Mean(samples, nil); score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best, nil
}

// sample plays random moves until the game ends or the depth cap is hit.
func (r *SampledRollout) sample(rules game.Rules, state game.State, rng *rand.Rand) (game.State, error) {
	for depth := 0; depth < r.Depth && !rules.IsOver(state); depth++ {
		moves := rules.LegalMoves(state)
		if len(moves) == 0 {
			return nil, &game.RulesError{Op: "LegalMoves", Detail: "no legal moves on a non-terminal state"}
		}
		state = rules.Play(state, moves[rng.Intn(len(moves))])
	}
	return state, nil
}

// outcome scores a sampled position as the identity's lead over its
// opponent, from the point tally when the game provides one and otherwise
// from counted cell ownership.
func outcome(rules game.Rules, state game.State, identity string) float64 {
	if points := rules.PointValues(state); points != nil {
		var mine, theirs float64
		for id, value := range points {
			if id == identity {
				mine += value
			} else {
				theirs += value
			}
		}
		return mine - theirs
	}

	var mine, theirs float64
	for _, owner := range rules.OwnedCells(state) {
		switch owner {
		case identity:
			mine++
		case "":
		default:
			theirs++
		}
	}
	return mine - theirs
}
