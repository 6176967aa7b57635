package searcher

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"gamesolver/experiments/metrics"
	"gamesolver/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrNilTree = errors.New("game tree must not be nil")
	ErrNilFunc = errors.New("opponent and evaluation functions must not be nil")
)

type Option func(o *solverOptions)

type solverOptions struct {
	tolerance float64
	metrics   metrics.Collector
}

// WithTolerance sets how close two values must be to count as equal.
func WithTolerance(tolerance float64) Option {
	return func(o *solverOptions) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(o *solverOptions) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// Solver solves a game tree by backward induction. Values are from the perspective of
// the player to move at the root (the max player): positive is a win, negative a loss
// and zero a tie.
//
// Solving and policy extraction run lazily, at most once, and are safe to trigger from
// several goroutines.
type Solver[P game.Player, A game.Ordered[A], S game.State[P, A, S]] struct {
	tree      *GameTree[P, A, S]
	evaluate  game.Evaluate[P, S]
	maxPlayer P
	minPlayer P
	tolerance float64
	metrics   metrics.Collector

	solveOnce  sync.Once
	policyOnce sync.Once
	solved     atomic.Bool
	values     []float64 // Indexed by node
	policy     [][]A     // Indexed by node, nil for terminal states
	winner     P
	hasWinner  bool
}

func NewSolver[P game.Player, A game.Ordered[A], S game.State[P, A, S]](tree *GameTree[P, A, S], opponent game.Opponent[P], evaluate game.Evaluate[P, S], options ...Option) (*Solver[P, A, S], error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if opponent == nil || evaluate == nil {
		return nil, ErrNilFunc
	}
	o := solverOptions{tolerance: Tolerance, metrics: metrics.NewDummyCollector()}
	for _, option := range options {
		option(&o)
	}

	maxPlayer := tree.Root().Player()
	return &Solver[P, A, S]{
		tree:      tree,
		evaluate:  evaluate,
		maxPlayer: maxPlayer,
		minPlayer: opponent(maxPlayer),
		tolerance: o.tolerance,
		metrics:   o.metrics,
	}, nil
}

// Solve returns the value of the root state.
func (s *Solver[P, A, S]) Solve() float64 {
	s.solveOnce.Do(s.backup)
	return s.values[0]
}

func (s *Solver[P, A, S]) backup() {
	s.metrics.StartSolve()

	nodes := s.tree.nodes
	values := make([]float64, len(nodes))
	for _, i := range s.tree.postorder {
		n := &nodes[i]
		if n.terminal() {
			values[i] = s.evaluate(n.state, s.maxPlayer)
			s.metrics.AddEvaluation()
			continue
		}

		maximizing := n.state.Player() == s.maxPlayer
		best := initValue(maximizing)
		for _, child := range n.children {
			v := values[child]
			if (maximizing && v > best) || (!maximizing && v < best) {
				best = v
			}
		}
		values[i] = best
	}

	root := values[0]
	switch {
	case root > s.tolerance:
		s.winner, s.hasWinner = s.maxPlayer, true
	case root < -s.tolerance:
		s.winner, s.hasWinner = s.minPlayer, true
	}
	s.values = values
	s.solved.Store(true)
	s.metrics.CompleteSolve(root)

	log.Debug().Float64("value", root).Int("nodes", len(nodes)).Msg("solved game tree")
}

func initValue(maximizing bool) float64 {
	if maximizing {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// Solved reports whether Solve has run.
func (s *Solver[P, A, S]) Solved() bool {
	return s.solved.Load()
}

// Winner returns the winner of the root state under optimal play; ok is false for a tie.
func (s *Solver[P, A, S]) Winner() (winner P, ok bool) {
	s.Solve()
	return s.winner, s.hasWinner
}

// Value returns the value of any state of the tree.
func (s *Solver[P, A, S]) Value(state S) (float64, error) {
	i, err := s.tree.find(state)
	if err != nil {
		return 0, err
	}
	s.Solve()
	return s.values[i], nil
}

func (s *Solver[P, A, S]) MaxPlayer() P {
	return s.maxPlayer
}

func (s *Solver[P, A, S]) MinPlayer() P {
	return s.minPlayer
}

func (s *Solver[P, A, S]) Tree() *GameTree[P, A, S] {
	return s.tree
}
