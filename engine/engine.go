package engine

import (
	"time"

	"mctsbot/game"
	"mctsbot/searcher"
)

// MaxMoves caps runaway games caused by misbehaving rules.
const MaxMoves = 10000

// An Agent produces the next move for the player it controls.
type Agent interface {
	FindMove(state game.State) (game.Move, error)
}

// MoveRecord captures one played move and, for searching agents, the
// statistics behind it.
type MoveRecord struct {
	Step   int
	Player string
	Move   string
	Metric searcher.SearchMetric
}

// GameRecord summarizes one finished game.
type GameRecord struct {
	StartTime time.Time
	Duration  time.Duration
	Winner    string
	Moves     int
}
