package searcher

import (
	"slices"
	"testing"

	"gamesolver/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func buildMockTree(t *testing.T, g *mockGame, options ...TreeOption) *GameTree[int, mockAction, *mockState] {
	t.Helper()
	tree, err := NewGameTree[int, mockAction](g.root(player1), options...)
	require.NoError(t, err)
	return tree
}

func TestNewGameTree(t *testing.T) {
	t.Run("collapsing transpositions into a single node", func(t *testing.T) {
		tree := buildMockTree(t, newDiamondGame())

		require.Equal(t, 6, tree.Size(), "Tree should hold each distinct state once")
		require.Equal(t, "a", tree.Root().position, "Root should be the initial state")
	})

	t.Run("failing on nil root", func(t *testing.T) {
		tree, err := NewGameTree[int, mockAction, *mockState](nil)

		require.ErrorIs(t, err, ErrNilState)
		require.Nil(t, tree)
	})

	t.Run("not mutating the root", func(t *testing.T) {
		root := newDiamondGame().root(player1)

		_, err := NewGameTree[int, mockAction](root)

		require.NoError(t, err)
		require.Equal(t, "a", root.position, "Root should not change")
		require.Equal(t, player1, root.player, "Root should not change")
	})

	t.Run("distinguishing states by player to move", func(t *testing.T) {
		// a(p1) -> c(p2) and a(p1) -> b(p2) -> c(p1)
		g := &mockGame{
			edges:  map[string][]string{"a": {"b", "c"}, "b": {"c"}},
			payoff: map[string]float64{"c": 1},
		}
		tree := buildMockTree(t, g)

		require.Equal(t, 4, tree.Size(), "c(p1) and c(p2) should be distinct nodes")
	})

	t.Run("wrapping a failing action", func(t *testing.T) {
		g := newDiamondGame()
		g.broken = map[string]bool{"c": true}

		_, err := NewGameTree[int, mockAction](g.root(player1))

		require.ErrorIs(t, err, errMockApply)
	})

	t.Run("bounding the number of states", func(t *testing.T) {
		_, err := NewGameTree[int, mockAction](newDiamondGame().root(player1), WithMaxNodes(3))

		require.ErrorIs(t, err, ErrTooManyStates)
	})

	t.Run("rejecting a cyclic game", func(t *testing.T) {
		g := &mockGame{
			edges: map[string][]string{"a": {"b", "t"}, "b": {"a"}},
		}

		_, err := NewGameTree[int, mockAction](g.root(player1))

		require.ErrorIs(t, err, ErrCyclic)
	})

	t.Run("collecting build metrics", func(t *testing.T) {
		collector := metrics.NewCollector()

		buildMockTree(t, newDiamondGame(), WithTreeMetrics(collector))

		got := collector.Complete()
		require.Equal(t, 6, got.Nodes)
		require.Equal(t, 3, got.Terminals)
	})
}

func TestGameTreeOrder(t *testing.T) {
	tree := buildMockTree(t, newDiamondGame())

	t.Run("placing children ahead of parents", func(t *testing.T) {
		seen := make(map[int]bool)
		for _, i := range tree.postorder {
			for _, child := range tree.nodes[i].children {
				require.True(t, seen[child], "Child %d should come before parent %d", child, i)
			}
			seen[i] = true
		}
		require.Len(t, seen, tree.Size(), "Every node should be ordered")
	})

	t.Run("iterating in ascending state order", func(t *testing.T) {
		positions := []string{}
		for state := range tree.All() {
			positions = append(positions, state.position)
		}

		require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, positions)
	})

	t.Run("restarting and stopping iteration", func(t *testing.T) {
		first := 0
		for range tree.All() {
			first++
			if first == 2 {
				break
			}
		}
		second := 0
		for range tree.All() {
			second++
		}

		require.Equal(t, 2, first, "Iteration should stop when asked")
		require.Equal(t, tree.Size(), second, "Iteration should restart from the beginning")
	})
}

func TestGameTreeActions(t *testing.T) {
	g := newDiamondGame()
	tree := buildMockTree(t, g)

	t.Run("returning sorted actions of a non-terminal state", func(t *testing.T) {
		actions, err := tree.Actions(g.root(player1))

		require.NoError(t, err)
		require.Equal(t, []mockAction{0, 1}, actions)
	})

	t.Run("returning nil for a terminal state", func(t *testing.T) {
		actions, err := tree.Actions(&mockState{game: g, position: "d", player: player1})

		require.NoError(t, err)
		require.Nil(t, actions)
	})

	t.Run("failing on an unknown state", func(t *testing.T) {
		actions, err := tree.Actions(&mockState{game: g, position: "d", player: player2})

		require.ErrorIs(t, err, ErrUnknownState)
		require.Nil(t, actions)
	})

	t.Run("failing on a nil state", func(t *testing.T) {
		_, err := tree.Actions(nil)

		require.ErrorIs(t, err, ErrNilState)
	})

	t.Run("not exposing internal storage", func(t *testing.T) {
		actions, _ := tree.Actions(g.root(player1))
		actions[0] = 42

		again, _ := tree.Actions(g.root(player1))
		require.Equal(t, []mockAction{0, 1}, again)
	})
}

func TestGameTreeDestination(t *testing.T) {
	g := newDiamondGame()
	tree := buildMockTree(t, g)

	t.Run("returning the shared successor node", func(t *testing.T) {
		b, err := tree.Destination(g.root(player1), 0)
		require.NoError(t, err)
		c, err := tree.Destination(g.root(player1), 1)
		require.NoError(t, err)

		fromB, err := tree.Destination(b, 0)
		require.NoError(t, err)
		fromC, err := tree.Destination(c, 0)
		require.NoError(t, err)

		require.Equal(t, "d", fromB.position)
		require.Same(t, fromB, fromC, "Transposed states should share one node")
	})

	t.Run("failing on an illegal action", func(t *testing.T) {
		_, err := tree.Destination(g.root(player1), 7)

		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("failing on a terminal state", func(t *testing.T) {
		_, err := tree.Destination(&mockState{game: g, position: "e", player: player1}, 0)

		require.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("failing on an unknown state", func(t *testing.T) {
		_, err := tree.Destination(&mockState{game: g, position: "z", player: player1}, 0)

		require.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("failing on a nil action", func(t *testing.T) {
		root := &pointerState{mockState: *g.root(player1)}
		pointerTree, err := NewGameTree[int, *pointerAction](root)
		require.NoError(t, err)

		c, err := pointerTree.Destination(root, &pointerAction{index: 1})
		require.NoError(t, err)
		require.Equal(t, "c", c.position)

		_, err = pointerTree.Destination(root, nil)
		require.ErrorIs(t, err, ErrNilAction)
	})
}

func TestGameTreeContains(t *testing.T) {
	g := newDiamondGame()
	tree := buildMockTree(t, g)

	t.Run("containing every destination", func(t *testing.T) {
		for state := range tree.All() {
			actions, err := tree.Actions(state)
			require.NoError(t, err)
			for _, action := range actions {
				next, err := tree.Destination(state, action)
				require.NoError(t, err)
				require.True(t, tree.Contains(next))
				require.True(t, tree.Contains(next.Copy()), "Lookup should go by equality, not identity")
			}
		}
	})

	t.Run("not containing an unreachable state", func(t *testing.T) {
		require.False(t, tree.Contains(&mockState{game: g, position: "a", player: player2}))
		require.False(t, tree.Contains(nil))
	})

	t.Run("indexing the root at zero", func(t *testing.T) {
		i, ok := tree.Index(g.root(player1))

		require.True(t, ok)
		require.Zero(t, i)
		require.True(t, slices.Contains(tree.postorder, i))
	})
}

type pointerAction struct {
	index mockAction
}

func (a *pointerAction) Compare(other *pointerAction) int {
	return a.index.Compare(other.index)
}

// pointerState plays the mock game with pointer actions.
type pointerState struct {
	mockState
}

func (s *pointerState) LegalActions() []*pointerAction {
	actions := []*pointerAction{}
	for _, a := range s.mockState.LegalActions() {
		actions = append(actions, &pointerAction{index: a})
	}
	return actions
}

func (s *pointerState) Apply(action *pointerAction) error {
	return s.mockState.Apply(action.index)
}

func (s *pointerState) Copy() *pointerState {
	c := *s
	return &c
}

func (s *pointerState) Compare(other *pointerState) int {
	return s.mockState.Compare(&other.mockState)
}
