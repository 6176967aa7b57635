package experiments

import (
	"fmt"

	"gamesolver/experiments/metrics"
	"gamesolver/searcher"
	"gamesolver/tictactoe"

	"github.com/rs/zerolog/log"
)

// MaxNodes bounds every tree built by a sweep.
const MaxNodes = 1 << 22

// DefaultConfigs solves every board up to 3x3 from both first players.
var DefaultConfigs = []metrics.SolveConfig{
	{ID: 1, Size: 1, First: "X"},
	{ID: 2, Size: 1, First: "O"},
	{ID: 3, Size: 2, First: "X"},
	{ID: 4, Size: 2, First: "O"},
	{ID: 5, Size: 3, First: "X"},
	{ID: 6, Size: 3, First: "O"},
}

// RunSweep solves each configuration and, if dir is not empty, stores the records under
// a timestamped folder of dir.
func RunSweep(configs []metrics.SolveConfig, dir string) ([]metrics.SolveRecord, error) {
	log.Info().Msgf("starting sweep of %d configurations...", len(configs))

	records := []metrics.SolveRecord{}
	for i, config := range configs {
		log.Info().Msgf("solving configuration %d of %d: %+v...", i+1, len(configs), config)

		record, err := runSolve(config)
		if err != nil {
			return records, fmt.Errorf("failed to solve configuration %d: %w", config.ID, err)
		}
		records = append(records, record)

		log.Info().Msgf("completed configuration %d of %d with value %g over %d states", i+1, len(configs), record.Value, record.Nodes)
	}

	log.Info().Msg("completed sweep")
	if dir == "" {
		return records, nil
	}

	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return records, fmt.Errorf("failed to create sweep writer: %w", err)
	}
	if err := writer.WriteSolveRecords(records); err != nil {
		return records, fmt.Errorf("failed to store solve records: %w", err)
	}
	log.Info().Msgf("stored solve records in %s", writer.Dir())
	return records, nil
}

func runSolve(config metrics.SolveConfig) (metrics.SolveRecord, error) {
	first, err := tictactoe.ParseMark(config.First)
	if err != nil {
		return metrics.SolveRecord{}, err
	}
	grid, err := tictactoe.NewGrid(first, config.Size)
	if err != nil {
		return metrics.SolveRecord{}, err
	}

	collector := metrics.NewCollector()
	tree, err := searcher.NewGameTree[tictactoe.Mark, tictactoe.Coordinate](grid, searcher.WithMaxNodes(MaxNodes), searcher.WithTreeMetrics(collector))
	if err != nil {
		return metrics.SolveRecord{}, err
	}
	solver, err := searcher.NewSolver(tree, tictactoe.Opponent, tictactoe.Evaluate, searcher.WithMetrics(collector))
	if err != nil {
		return metrics.SolveRecord{}, err
	}
	solver.Solve()

	record := metrics.SolveRecord{Config: config, SolveMetric: collector.Complete()}
	if winner, ok := solver.Winner(); ok {
		record.Winner = winner.String()
	}
	return record, nil
}
