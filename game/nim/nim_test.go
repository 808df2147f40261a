package nim

import (
	"testing"

	"mctsbot/game"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	rules := New()

	t.Run("up to MaxTake sticks", func(t *testing.T) {
		moves := rules.LegalMoves(Position{Sticks: 5, Mover: "a", Next: "b"})

		require.Equal(t, []game.Move{Take{N: 1}, Take{N: 2}, Take{N: 3}}, moves)
	})

	t.Run("capped by the pile", func(t *testing.T) {
		moves := rules.LegalMoves(Position{Sticks: 2, Mover: "a", Next: "b"})

		require.Equal(t, []game.Move{Take{N: 1}, Take{N: 2}}, moves)
	})

	t.Run("none on an empty pile", func(t *testing.T) {
		state := Position{Sticks: 0, Mover: "a", Next: "b"}

		require.Empty(t, rules.LegalMoves(state))
		require.True(t, rules.IsOver(state))
	})
}

func TestPlay(t *testing.T) {
	rules := New()

	state := rules.Play(Position{Sticks: 5, Mover: "a", Next: "b"}, Take{N: 2})

	require.Equal(t, Position{Sticks: 3, Mover: "b", Next: "a"}, state)
	require.Equal(t, "b", rules.Player(state))
}

func TestWinConvention(t *testing.T) {
	rules := New()

	// Taking the last stick leaves the opponent to move with nothing left.
	state := rules.Play(Position{Sticks: 3, Mover: "a", Next: "b"}, Take{N: 3})

	require.True(t, rules.IsOver(state))
	require.Equal(t, "b", rules.Player(state),
		"The player to move at the terminal state is the loser")
}
