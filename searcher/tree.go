package searcher

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"gamesolver/experiments/metrics"
	"gamesolver/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrNilState      = errors.New("state must not be nil")
	ErrNilAction     = errors.New("action must not be nil")
	ErrUnknownState  = errors.New("state does not belong to this game tree")
	ErrTerminalState = errors.New("state must not be terminal")
	ErrIllegalAction = errors.New("action is not legal on the state")
	ErrTooManyStates = errors.New("game tree exceeds the maximum number of states")
	ErrCyclic        = errors.New("game tree contains a cycle")
)

type TreeOption func(o *treeOptions)

type treeOptions struct {
	maxNodes int
	metrics  metrics.Collector
}

// WithMaxNodes aborts enumeration once more than n distinct states are discovered.
func WithMaxNodes(n int) TreeOption {
	return func(o *treeOptions) {
		if n > 0 {
			o.maxNodes = n
		}
	}
}

func WithTreeMetrics(collector metrics.Collector) TreeOption {
	return func(o *treeOptions) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// GameTree holds every distinct state reachable from a root state, with the legal
// actions of each non-terminal state and the state each action leads to. States
// reached through different move orders share one node, so the graph is a DAG.
//
// A GameTree is immutable once built and safe for concurrent reads.
type GameTree[P game.Player, A game.Ordered[A], S game.State[P, A, S]] struct {
	nodes     []node[A, S] // Root at index 0, in discovery order
	table     map[game.StateHash][]int
	sorted    []int // Node indices in ascending state order
	postorder []int // Node indices with every child ahead of its parents
}

// NewGameTree enumerates the state space reachable from a copy of root.
func NewGameTree[P game.Player, A game.Ordered[A], S game.State[P, A, S]](root S, options ...TreeOption) (*GameTree[P, A, S], error) {
	if isNil(root) {
		return nil, ErrNilState
	}
	o := treeOptions{metrics: metrics.NewDummyCollector()}
	for _, option := range options {
		option(&o)
	}

	t := &GameTree[P, A, S]{table: make(map[game.StateHash][]int)}
	o.metrics.StartBuild()
	t.insert(root.Copy())

	// The node arena doubles as the FIFO frontier
	for next := 0; next < len(t.nodes); next++ {
		parent := t.nodes[next].state
		actions := legalActions[P, A, S](parent)
		o.metrics.AddNode(actions == nil)
		if actions == nil {
			continue
		}

		children := make([]int, len(actions))
		for i, action := range actions {
			child := parent.Copy()
			if err := child.Apply(action); err != nil {
				return nil, fmt.Errorf("failed to apply %v on state %d: %w", action, next, err)
			}
			index, added := t.insert(child)
			if added && o.maxNodes > 0 && len(t.nodes) > o.maxNodes {
				return nil, fmt.Errorf("%w: more than %d states", ErrTooManyStates, o.maxNodes)
			}
			children[i] = index
		}
		t.nodes[next].actions = actions
		t.nodes[next].children = children
	}

	if err := t.order(); err != nil {
		return nil, err
	}
	o.metrics.CompleteBuild()

	log.Debug().Int("nodes", len(t.nodes)).Msg("built game tree")
	return t, nil
}

// legalActions returns the state's actions sorted and deduplicated, or nil if the
// state is terminal.
func legalActions[P game.Player, A game.Ordered[A], S game.State[P, A, S]](state S) []A {
	if state.IsTerminal() {
		return nil
	}
	actions := slices.Clone(state.LegalActions())
	if len(actions) == 0 {
		return nil
	}
	slices.SortFunc(actions, compare[A])
	return slices.CompactFunc(actions, func(a, b A) bool { return a.Compare(b) == 0 })
}

func (t *GameTree[P, A, S]) insert(state S) (int, bool) {
	if i, ok := t.lookup(state); ok {
		return i, false
	}
	i := len(t.nodes)
	t.nodes = append(t.nodes, node[A, S]{state: state})
	hash := state.Hash()
	t.table[hash] = append(t.table[hash], i)
	return i, true
}

func (t *GameTree[P, A, S]) lookup(state S) (int, bool) {
	for _, i := range t.table[state.Hash()] {
		if t.nodes[i].state.Compare(state) == 0 {
			return i, true
		}
	}
	return -1, false
}

// order computes the iteration order and the dependency order of the nodes.
func (t *GameTree[P, A, S]) order() error {
	t.sorted = make([]int, len(t.nodes))
	for i := range t.sorted {
		t.sorted[i] = i
	}
	slices.SortFunc(t.sorted, func(a, b int) int {
		return t.nodes[a].state.Compare(t.nodes[b].state)
	})

	const (
		unvisited = iota
		visiting
		visited
	)
	type frame struct {
		index int
		next  int
	}

	marks := make([]uint8, len(t.nodes))
	t.postorder = make([]int, 0, len(t.nodes))
	stack := []frame{{index: 0}}
	marks[0] = visiting
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.nodes[top.index].children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			switch marks[child] {
			case visiting:
				return fmt.Errorf("%w: state %d is reachable from itself", ErrCyclic, child)
			case unvisited:
				marks[child] = visiting
				stack = append(stack, frame{index: child})
			}
			continue
		}
		marks[top.index] = visited
		t.postorder = append(t.postorder, top.index)
		stack = stack[:len(stack)-1]
	}
	return nil
}

func (t *GameTree[P, A, S]) find(state S) (int, error) {
	if isNil(state) {
		return -1, ErrNilState
	}
	i, ok := t.lookup(state)
	if !ok {
		return -1, ErrUnknownState
	}
	return i, nil
}

// Actions returns the legal actions of state in ascending order, or nil if state is
// terminal.
func (t *GameTree[P, A, S]) Actions(state S) ([]A, error) {
	i, err := t.find(state)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.nodes[i].actions), nil
}

// Destination returns the state reached by playing action on state. The result is the
// tree's own node and must not be mutated; Copy it first.
func (t *GameTree[P, A, S]) Destination(state S, action A) (S, error) {
	var zero S
	i, err := t.find(state)
	if err != nil {
		return zero, err
	}
	if isNil(action) {
		return zero, ErrNilAction
	}

	n := &t.nodes[i]
	if n.terminal() {
		return zero, ErrTerminalState
	}
	j, ok := slices.BinarySearchFunc(n.actions, action, compare[A])
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrIllegalAction, action)
	}
	return t.nodes[n.children[j]].state, nil
}

func (t *GameTree[P, A, S]) Contains(state S) bool {
	_, err := t.find(state)
	return err == nil
}

// Index returns the node index of state; the root is 0.
func (t *GameTree[P, A, S]) Index(state S) (int, bool) {
	i, err := t.find(state)
	return i, err == nil
}

func (t *GameTree[P, A, S]) Size() int {
	return len(t.nodes)
}

func (t *GameTree[P, A, S]) Root() S {
	return t.nodes[0].state
}

// All yields every state of the tree in ascending order.
func (t *GameTree[P, A, S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, i := range t.sorted {
			if !yield(t.nodes[i].state) {
				return
			}
		}
	}
}
