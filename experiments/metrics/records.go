package metrics

import (
	"time"

	"mctsbot/engine"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID         int
	Name       string
	Iterations int
	Duration   time.Duration
	Rollout    string // "random" or "sampled"
}

// GameRecord ties one finished game to the agents that played it.
type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, playing first
	Agent2 int
	engine.GameRecord
}

// MoveRecord ties one played move to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	engine.MoveRecord
}
