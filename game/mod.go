package game

import "fmt"

// State is an immutable snapshot of a game position. The engine treats
// states as values: it never mutates one, it only derives new states through
// Rules.Play, so a single State may back any number of concurrent samples.
type State any

// Move is a single action available to the player to move. Implementations
// must be comparable, since moves identify the edges of the search tree.
type Move interface {
	String() string
}

// Cell identifies one board cell for ownership accounting.
type Cell struct {
	X, Y int
}

// Rules is the game-rules provider the engine searches over. All methods
// are pure: they must not mutate their inputs, and the same inputs always
// produce the same outputs.
type Rules interface {
	// LegalMoves returns every action available to the player to move.
	// An empty result means the state is terminal.
	LegalMoves(s State) []Move
	// Play applies a legal move and returns the resulting state, leaving
	// the input untouched.
	Play(s State, m Move) State
	// Player returns the identity whose turn it is. At a terminal state it
	// returns the identity that would move next and cannot.
	Player(s State) string
	// IsOver reports whether the game has ended.
	IsOver(s State) bool
	// OwnedCells attributes board cells to identities for heuristic
	// scoring. Games without cell ownership may return nil.
	OwnedCells(s State) map[Cell]string
	// PointValues returns each identity's point tally, or nil for games
	// without point scoring.
	PointValues(s State) map[string]float64
}

// RulesError reports an inconsistency in a Rules implementation, such as a
// state with no legal moves that is not terminal. The engine surfaces these
// instead of masking them with a default move.
type RulesError struct {
	Op     string
	Detail string
}

func (e *RulesError) Error() string {
	return fmt.Sprintf("game rules violation in %s: %s", e.Op, e.Detail)
}
