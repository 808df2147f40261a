package engine

import (
	"fmt"
	"time"

	"mctsbot/game"
	"mctsbot/searcher"

	"github.com/rs/zerolog/log"
)

// Local plays a two-player game between in-process agents, keyed by the
// identity each one controls.
type Local struct {
	rules  game.Rules
	agents map[string]Agent
}

func NewLocal(rules game.Rules, agents map[string]Agent) (*Local, error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("engine: need exactly two agents, got %d", len(agents))
	}
	return &Local{rules: rules, agents: agents}, nil
}

// Run plays the game from start to its end and returns the winner together
// with per-move records. Whoever would move at the terminal state has lost,
// so the winner is the other identity.
func (e *Local) Run(start game.State) (GameRecord, []MoveRecord, error) {
	state := start
	began := time.Now()
	var records []MoveRecord

	for step := 1; !e.rules.IsOver(state); step++ {
		if step > MaxMoves {
			return GameRecord{}, records, fmt.Errorf("engine: game exceeded %d moves", MaxMoves)
		}

		mover := e.rules.Player(state)
		agent, ok := e.agents[mover]
		if !ok {
			return GameRecord{}, records, fmt.Errorf("engine: no agent for player %q", mover)
		}

		move, err := agent.FindMove(state)
		if err != nil {
			return GameRecord{}, records, fmt.Errorf("engine: player %q move %d: %w", mover, step, err)
		}

		record := MoveRecord{Step: step, Player: mover, Move: move.String()}
		if searching, ok := agent.(metricsProvider); ok {
			record.Metric = searching.Metric()
		}
		records = append(records, record)

		log.Debug().Int("step", step).Str("player", mover).Stringer("move", move).Msg("move played")
		state = e.rules.Play(state, move)
	}

	winner := e.winner(state)
	log.Info().Str("winner", winner).Int("moves", len(records)).Msg("game over")

	return GameRecord{
		StartTime: began,
		Duration:  time.Since(began),
		Winner:    winner,
		Moves:     len(records),
	}, records, nil
}

func (e *Local) winner(terminal game.State) string {
	loser := e.rules.Player(terminal)
	for id := range e.agents {
		if id != loser {
			return id
		}
	}
	return ""
}

type metricsProvider interface {
	Metric() searcher.SearchMetric
}

// MCTSAdapter drives a searcher.MCTS as an Agent for a fixed rules
// provider, keeping the statistics of the latest search.
type MCTSAdapter struct {
	Rules   game.Rules
	Search  *searcher.MCTS
	metrics searcher.Collector
}

func NewMCTSAdapter(rules game.Rules, options ...searcher.Option) (*MCTSAdapter, error) {
	metrics := searcher.NewCollector()
	search, err := searcher.NewMCTS(append(options, searcher.WithMetrics(metrics))...)
	if err != nil {
		return nil, err
	}
	return &MCTSAdapter{Rules: rules, Search: search, metrics: metrics}, nil
}

func (a *MCTSAdapter) FindMove(state game.State) (game.Move, error) {
	return a.Search.FindMove(a.Rules, state)
}

// Metric reports the statistics of the latest FindMove call.
func (a *MCTSAdapter) Metric() searcher.SearchMetric {
	return a.metrics.Complete()
}
