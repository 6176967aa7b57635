package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gamesolver/engine"
	"gamesolver/experiments"
	"gamesolver/experiments/metrics"
	"gamesolver/searcher"
	"gamesolver/tictactoe"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	size    int
	first   string
	dump    bool
	play    bool
	seed    uint64
	sweep   bool
	out     string
	maxNode int
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.size, "size", 3, "Width of the square grid")
	flag.StringVar(&cfg.first, "first", "X", "Player to move first (X or O)")
	flag.BoolVar(&cfg.dump, "dump", false, "Write every state of the game tree into ./"+searcher.DumpDir)
	flag.BoolVar(&cfg.play, "play", false, "Play out a game following the optimal policy")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Seed for choosing among tied optimal moves (0 plays the first one)")
	flag.BoolVar(&cfg.sweep, "sweep", false, "Solve every board up to 3x3 and store the records")
	flag.StringVar(&cfg.out, "out", "experiments", "Folder for sweep records")
	flag.IntVar(&cfg.maxNode, "max-states", 0, "Abort if the game has more distinct states (0 for no bound)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	if cfg.sweep {
		_, err = experiments.RunSweep(experiments.DefaultConfigs, cfg.out)
	} else {
		err = run(cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solver failed")
	}
}

func run(cfg config) error {
	first, err := tictactoe.ParseMark(cfg.first)
	if err != nil {
		return err
	}
	grid, err := tictactoe.NewGrid(first, cfg.size)
	if err != nil {
		return err
	}

	fmt.Printf("INPUT\nPlayer: %s\n%s\n", grid.Player(), grid)

	collector := metrics.NewCollector()
	options := []searcher.TreeOption{searcher.WithTreeMetrics(collector)}
	if cfg.maxNode > 0 {
		options = append(options, searcher.WithMaxNodes(cfg.maxNode))
	}
	tree, err := searcher.NewGameTree[tictactoe.Mark, tictactoe.Coordinate](grid, options...)
	if err != nil {
		return fmt.Errorf("failed to build game tree: %w", err)
	}
	if cfg.dump {
		if err := tree.Dump(searcher.DumpDir); err != nil {
			return err
		}
	}

	solver, err := searcher.NewSolver(tree, tictactoe.Opponent, tictactoe.Evaluate, searcher.WithMetrics(collector))
	if err != nil {
		return err
	}
	solver.Solve()
	metric := collector.Complete()
	log.Info().Msgf("solved %d states (%d terminal) in %s", metric.Nodes, metric.Terminals, metric.BuildDuration+metric.SolveDuration)

	fmt.Println("OUTPUT")
	winner, ok := solver.Winner()
	switch {
	case !ok:
		fmt.Println("A tie")
	case winner == grid.Player():
		policy, err := solver.Policy(grid)
		if err != nil {
			return err
		}
		fmt.Printf("Player %s wins.\nAction to take: %v\n", winner, policy)
	default:
		fmt.Printf("Player %s loses.\n", grid.Player())
	}

	if !cfg.play {
		return nil
	}
	return playOut(solver, cfg.seed)
}

func playOut(solver *searcher.Solver[tictactoe.Mark, tictactoe.Coordinate, *tictactoe.Grid], seed uint64) error {
	agents := map[tictactoe.Mark]engine.Agent[tictactoe.Coordinate]{}
	if seed != 0 {
		agents[tictactoe.Cross] = engine.RandomAgent[tictactoe.Coordinate](seed)
		agents[tictactoe.Nought] = engine.RandomAgent[tictactoe.Coordinate](seed + 1)
	}
	e := engine.LocalEngine(solver, agents)

	updates, err := e.Run()
	if err != nil {
		return err
	}
	for _, u := range updates {
		fmt.Printf("%d. %s plays %s\n%s\n", u.Step, u.Player, u.Action, u.State)
	}
	return nil
}
