package searcher

import (
	"testing"
	"time"

	"mctsbot/game"
	"mctsbot/game/nim"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// coinGame offers two equivalent root moves. Either move ends the game at
// once, and the winner of that playthrough is decided by a coin flip when
// the move is applied, so both moves win half of all playouts.
type coinGame struct {
	flip *rand.Rand
}

type coinState struct {
	over  bool
	loser string
}

func (g coinGame) LegalMoves(s game.State) []game.Move {
	if s.(coinState).over {
		return nil
	}
	return []game.Move{mockMove{id: 0}, mockMove{id: 1}}
}

func (g coinGame) Play(s game.State, m game.Move) game.State {
	loser := "me"
	if g.flip.Intn(2) == 0 {
		loser = "opp"
	}
	return coinState{over: true, loser: loser}
}

func (g coinGame) Player(s game.State) string {
	if st := s.(coinState); st.over {
		return st.loser
	}
	return "me"
}

func (g coinGame) IsOver(s game.State) bool {
	return s.(coinState).over
}

func (g coinGame) OwnedCells(game.State) map[game.Cell]string {
	return nil
}

func (g coinGame) PointValues(game.State) map[string]float64 {
	return nil
}

func TestNewMCTS(t *testing.T) {
	t.Run("defaults to the iteration budget", func(t *testing.T) {
		m, err := NewMCTS()

		require.NoError(t, err)
		require.Equal(t, DefaultIterations, m.iterations)
		require.Equal(t, DefaultExploration, m.exploration)
	})

	t.Run("rejects zero iterations", func(t *testing.T) {
		_, err := NewMCTS(WithIterations(0))

		require.ErrorIs(t, err, ErrNoBudget)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		_, err := NewMCTS(WithDuration(-time.Second))

		require.ErrorIs(t, err, ErrNoBudget)
	})

	t.Run("rejects two budgets", func(t *testing.T) {
		_, err := NewMCTS(WithIterations(100), WithDuration(time.Second))

		require.ErrorIs(t, err, ErrTwoBudgets)
	})

	t.Run("rejects a non-positive exploration constant", func(t *testing.T) {
		_, err := NewMCTS(WithExploration(0))

		require.Error(t, err)
	})
}

func TestFindMoveErrors(t *testing.T) {
	t.Run("terminal root state", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(10))
		require.NoError(t, err)

		_, err = m.FindMove(nim.New(), nim.Position{Sticks: 0, Mover: "a", Next: "b"})

		require.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("rules violation at the root", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(10))
		require.NoError(t, err)

		rules := mockRules{over: func(game.State) bool { return false }}
		_, err = m.FindMove(rules, nil)

		var violation *game.RulesError
		require.ErrorAs(t, err, &violation)
	})
}

func TestFindMove(t *testing.T) {
	t.Run("returns the only legal move", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(1), WithSeed(1))
		require.NoError(t, err)

		move, err := m.FindMove(nim.New(), nim.Position{Sticks: 1, Mover: "a", Next: "b"})

		require.NoError(t, err)
		require.Equal(t, nim.Take{N: 1}, move)
	})

	t.Run("finds the immediately winning move", func(t *testing.T) {
		m, err := NewMCTS(WithIterations(2000), WithSeed(7))
		require.NoError(t, err)

		move, err := m.FindMove(nim.New(), nim.Position{Sticks: 3, Mover: "a", Next: "b"})

		require.NoError(t, err)
		require.Equal(t, nim.Take{N: 3}, move,
			"Taking the whole pile wins immediately")
	})

	t.Run("is deterministic under a fixed seed", func(t *testing.T) {
		state := nim.Position{Sticks: 12, Mover: "a", Next: "b"}

		first, err := NewMCTS(WithIterations(300), WithSeed(42))
		require.NoError(t, err)
		second, err := NewMCTS(WithIterations(300), WithSeed(42))
		require.NoError(t, err)

		rootA := buildTree(t, first, nim.New(), state, 300)
		rootB := buildTree(t, second, nim.New(), state, 300)

		requireEqualTrees(t, rootA, rootB)
	})
}

func TestIterationBudget(t *testing.T) {
	collector := NewCollector()
	m, err := NewMCTS(WithIterations(57), WithSeed(3), WithMetrics(collector))
	require.NoError(t, err)

	_, err = m.FindMove(nim.New(), nim.Position{Sticks: 9, Mover: "a", Next: "b"})
	require.NoError(t, err)

	metric := collector.Complete()
	require.Equal(t, int64(57), metric.Iterations,
		"Exactly the budgeted number of iterations should run")
}

func TestDurationBudget(t *testing.T) {
	collector := NewCollector()
	m, err := NewMCTS(WithDuration(50*time.Millisecond), WithSeed(3), WithMetrics(collector))
	require.NoError(t, err)

	start := time.Now()
	_, err = m.FindMove(nim.New(), nim.Position{Sticks: 9, Mover: "a", Next: "b"})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.GreaterOrEqual(t, elapsed, 50*time.Millisecond,
		"The search should use its whole time budget")
	require.GreaterOrEqual(t, collector.Complete().Iterations, int64(1),
		"At least one iteration should complete")
}

func TestConvergence(t *testing.T) {
	m, err := NewMCTS(WithIterations(1000), WithSeed(11))
	require.NoError(t, err)

	rules := coinGame{flip: rand.New(newSource(23))}
	root := buildTree(t, m, rules, coinState{}, 1000)

	require.Len(t, root.children, 2)
	for _, child := range root.children {
		require.InDelta(t, 0.5, child.winRate(), 0.1,
			"Symmetric moves should converge to even win rates")
	}
}

func TestTreeInvariants(t *testing.T) {
	m, err := NewMCTS(WithIterations(500), WithSeed(5))
	require.NoError(t, err)

	root := buildTree(t, m, nim.New(), nim.Position{Sticks: 10, Mover: "a", Next: "b"}, 500)

	t.Run("wins never exceed visits", func(t *testing.T) {
		walk(root, func(n *node) {
			require.LessOrEqual(t, n.wins, n.visits)
		})
	})

	t.Run("child visits never exceed parent visits", func(t *testing.T) {
		walk(root, func(n *node) {
			for _, child := range n.children {
				require.LessOrEqual(t, child.visits, n.visits)
			}
		})
	})

	t.Run("the root expands every legal move exactly once", func(t *testing.T) {
		require.Empty(t, root.untried)
		require.Len(t, root.children, 3)
		seen := map[game.Move]bool{}
		for _, child := range root.children {
			require.False(t, seen[child.move], "No move should have two children")
			seen[child.move] = true
		}
	})
}

// buildTree runs the iteration loop by hand so tests can inspect the tree.
func buildTree(t *testing.T, m *MCTS, rules game.Rules, state game.State, iterations int) *node {
	t.Helper()

	root := newNode(nil, nil, rules.LegalMoves(state))
	identity := rules.Player(state)
	for i := 0; i < iterations; i++ {
		require.NoError(t, m.playout(rules, root, state, identity))
	}
	return root
}

func walk(n *node, visit func(*node)) {
	visit(n)
	for _, child := range n.children {
		walk(child, visit)
	}
}

func requireEqualTrees(t *testing.T, a, b *node) {
	t.Helper()

	require.Equal(t, a.move, b.move)
	require.Equal(t, a.wins, b.wins)
	require.Equal(t, a.visits, b.visits)
	require.Equal(t, a.untried, b.untried)
	require.Len(t, b.children, len(a.children))
	for i := range a.children {
		requireEqualTrees(t, a.children[i], b.children[i])
	}
}
