package searcher

import (
	"errors"
	"fmt"
	"time"

	"mctsbot/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Defaults for the search budget.
const (
	DefaultIterations = 1000
	DefaultDuration   = time.Second
)

var (
	// ErrTerminalState reports a search started from a position with no
	// legal moves.
	ErrTerminalState = errors.New("searcher: no legal moves from the root state")
	// ErrNoBudget reports a budget configured to zero iterations or a
	// non-positive duration.
	ErrNoBudget = errors.New("searcher: search budget must be positive")
	// ErrTwoBudgets reports a configuration naming both an iteration count
	// and a duration; the budget is one or the other.
	ErrTwoBudgets = errors.New("searcher: iteration and duration budgets are exclusive")
)

type Option func(m *MCTS)

// MCTS runs Monte Carlo tree search over a game.Rules implementation. One
// FindMove call builds one tree and discards it; nothing is shared between
// calls. An MCTS value is not safe for concurrent FindMove calls.
type MCTS struct {
	iterations    int
	duration      time.Duration
	hasIterations bool
	hasDuration   bool
	exploration   float64
	rollout       Rollout
	rng           *rand.Rand
	metrics       Collector
}

// WithIterations sets a fixed iteration-count budget.
func WithIterations(n int) Option {
	return func(m *MCTS) {
		m.iterations = n
		m.hasIterations = true
	}
}

// WithDuration sets a wall-clock budget, checked between iterations only,
// so the search may overshoot by up to one iteration's cost.
func WithDuration(d time.Duration) Option {
	return func(m *MCTS) {
		m.duration = d
		m.hasDuration = true
	}
}

// WithExploration overrides the UCT exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

// WithRollout swaps the simulation strategy.
func WithRollout(r Rollout) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rollout = r
		}
	}
}

// WithSeed makes every random draw reproducible from the given seed.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(newSource(seed))
	}
}

// WithRandom supplies the random source directly.
func WithRandom(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithMetrics collects search statistics into c.
func WithMetrics(c Collector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.metrics = c
		}
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{
		exploration: DefaultExploration,
		rollout:     RandomRollout{},
		metrics:     NewNopCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if m.hasIterations && m.hasDuration {
		return nil, ErrTwoBudgets
	}
	if m.hasIterations && m.iterations <= 0 {
		return nil, ErrNoBudget
	}
	if m.hasDuration && m.duration <= 0 {
		return nil, ErrNoBudget
	}
	if !m.hasIterations && !m.hasDuration {
		m.iterations = DefaultIterations
		m.hasIterations = true
	}
	if m.exploration <= 0 {
		return nil, fmt.Errorf("searcher: exploration constant must be positive, got %v", m.exploration)
	}
	if m.rng == nil {
		m.rng = rand.New(newSource(uint64(time.Now().UnixNano())))
	}
	return m, nil
}

// FindMove returns the move judged best for the player to move in state.
//
// A playout counts as a win when the player to move at its terminal
// position is not the searching identity. This assumes the normal-play
// convention, where the player unable to move has lost; games decided by a
// score threshold need a different contract.
func (m *MCTS) FindMove(rules game.Rules, state game.State) (game.Move, error) {
	moves := rules.LegalMoves(state)
	if len(moves) == 0 {
		if !rules.IsOver(state) {
			return nil, &game.RulesError{Op: "LegalMoves", Detail: "no legal moves on a non-terminal state"}
		}
		return nil, ErrTerminalState
	}

	identity := rules.Player(state)
	root := newNode(nil, nil, moves)

	m.metrics.Start()
	if m.hasIterations {
		for i := 0; i < m.iterations; i++ {
			if err := m.playout(rules, root, state, identity); err != nil {
				return nil, err
			}
		}
	} else {
		start := time.Now()
		for time.Since(start) < m.duration {
			if err := m.playout(rules, root, state, identity); err != nil {
				return nil, err
			}
		}
	}

	best := root.mostWinning()
	if best == nil {
		return nil, errors.New("searcher: search ended with an empty tree")
	}

	log.Debug().
		Stringer("move", best.move).
		Int("wins", best.wins).
		Int("visits", best.visits).
		Int("total", root.visits).
		Msg("search complete")

	return best.move, nil
}

// playout runs one full MCTS iteration: selection, expansion, simulation
// and backpropagation. The real state is shared, never copied: Play derives
// fresh values, so every iteration walks its own snapshots.
func (m *MCTS) playout(rules game.Rules, root *node, state game.State, identity string) error {
	n, sampled := descend(rules, root, state, m.exploration)

	if len(n.untried) > 0 {
		n, sampled = n.expand(rules, sampled, m.rng)
		m.metrics.AddExpansion()
	}

	terminal, err := m.rollout.Play(rules, sampled, identity, m.rng)
	if err != nil {
		return err
	}

	n.backup(rules.Player(terminal) != identity)
	m.metrics.AddIteration()
	return nil
}

// descend walks the tree while every node on the path is fully expanded,
// advancing the state in lockstep, and returns the frontier node with its
// state. A terminal node, a node with untried moves, or a node where no
// child beats the zero baseline all stop the descent.
func descend(rules game.Rules, root *node, state game.State, c float64) (*node, game.State) {
	n := root
	for n.expanded() && len(n.children) > 0 {
		child := n.bestChild(c)
		if child == nil {
			break
		}
		state = rules.Play(state, child.move)
		n = child
	}
	return n, state
}
