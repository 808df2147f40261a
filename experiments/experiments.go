// Package experiments runs head-to-head matches between search
// configurations and stores the results as CSV for offline analysis.
package experiments

import (
	"fmt"

	"mctsbot/engine"
	"mctsbot/experiments/metrics"
	"mctsbot/game/domino"
	"mctsbot/searcher"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

const (
	// NumGames is played per experiment, alternating the starting side so
	// neither agent benefits from Vertical's first-move advantage.
	NumGames = 20

	boardWidth  = 5
	boardHeight = 5
	iterations  = 300
)

// RunRolloutExperiment pits the random-rollout agent against the sampled-
// rollout agent at Domineering and writes the records under baseDir.
func RunRolloutExperiment(baseDir string) error {
	random := metrics.AgentConfig{ID: 1, Name: "random", Iterations: iterations, Rollout: "random"}
	sampled := metrics.AgentConfig{ID: 2, Name: "sampled", Iterations: iterations, Rollout: "sampled"}
	board := domino.NewBoard(boardWidth, boardHeight)

	log.Info().Msg("starting rollout experiment")

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	sampledWins := make([]float64, 0, NumGames)

	for i := 0; i < NumGames; i++ {
		first, second := random, sampled
		if i%2 == 1 {
			first, second = sampled, random
		}

		record, moves, err := runGame(board, first, second)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     first.ID,
			Agent2:     second.ID,
			GameRecord: record,
		})
		for _, move := range moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveRecord: move})
		}

		winner := first
		if record.Winner == domino.Horizontal {
			winner = second
		}
		if winner.ID == sampled.ID {
			sampledWins = append(sampledWins, 1)
		} else {
			sampledWins = append(sampledWins, 0)
		}

		log.Info().Int("game", i+1).Str("winner", winner.Name).Int("moves", record.Moves).Msg("game complete")
	}

	winRate := stat.Mean(sampledWins, nil)
	deviation := stat.StdDev(sampledWins, nil)
	log.Info().
		Float64("sampled_win_rate", winRate).
		Float64("std_dev", deviation).
		Msg("completed rollout experiment")

	return store(baseDir, []metrics.AgentConfig{random, sampled}, gameRecords, moveRecords)
}

// runGame plays one game with the first config on Vertical.
func runGame(board domino.Board, first, second metrics.AgentConfig) (engine.GameRecord, []engine.MoveRecord, error) {
	vertical, err := createAgent(board, first)
	if err != nil {
		return engine.GameRecord{}, nil, err
	}
	horizontal, err := createAgent(board, second)
	if err != nil {
		return engine.GameRecord{}, nil, err
	}

	match, err := engine.NewLocal(board, map[string]engine.Agent{
		domino.Vertical:   vertical,
		domino.Horizontal: horizontal,
	})
	if err != nil {
		return engine.GameRecord{}, nil, err
	}
	return match.Run(board.Start())
}

func createAgent(board domino.Board, config metrics.AgentConfig) (*engine.MCTSAdapter, error) {
	options := []searcher.Option{}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Rollout == "sampled" {
		options = append(options, searcher.WithRollout(searcher.NewSampledRollout()))
	}
	return engine.NewMCTSAdapter(board, options...)
}

func store(baseDir string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(baseDir, "rollout")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}
