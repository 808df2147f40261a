package main

import (
	"fmt"
	"os"
	"time"

	"mctsbot/engine"
	"mctsbot/experiments"
	"mctsbot/game"
	"mctsbot/game/domino"
	"mctsbot/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var err error
	if len(os.Args) > 1 && os.Args[1] == "experiment" {
		err = experiments.RunRolloutExperiment("experiments")
	} else {
		err = runDemo()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// runDemo plays one Domineering game between a random-rollout agent and a
// sampled-rollout agent, rendering the board after every move.
func runDemo() error {
	board := domino.NewBoard(6, 6)

	random, err := engine.NewMCTSAdapter(board, searcher.WithDuration(500*time.Millisecond))
	if err != nil {
		return err
	}
	sampled, err := engine.NewMCTSAdapter(board,
		searcher.WithIterations(100),
		searcher.WithRollout(searcher.NewSampledRollout()),
	)
	if err != nil {
		return err
	}
	agents := map[string]engine.Agent{
		domino.Vertical:   random,
		domino.Horizontal: sampled,
	}

	out := termenv.NewOutput(os.Stdout)
	state := game.State(board.Start())

	for !board.IsOver(state) {
		mover := board.Player(state)
		move, err := agents[mover].FindMove(state)
		if err != nil {
			return err
		}
		state = board.Play(state, move)

		fmt.Fprintf(out, "%s plays %s\n", mover, move)
		render(out, board, state)
	}

	loser := board.Player(state)
	fmt.Fprintf(out, "%s cannot move: %s wins\n", loser, winnerOf(loser))
	return nil
}

func winnerOf(loser string) string {
	if loser == domino.Vertical {
		return domino.Horizontal
	}
	return domino.Vertical
}

func render(out *termenv.Output, board domino.Board, s game.State) {
	owners := board.OwnedCells(s)
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			switch owners[game.Cell{X: x, Y: y}] {
			case domino.Vertical:
				fmt.Fprint(out, out.String("V ").Foreground(out.Color("4")))
			case domino.Horizontal:
				fmt.Fprint(out, out.String("H ").Foreground(out.Color("1")))
			default:
				fmt.Fprint(out, out.String(". ").Faint())
			}
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}
