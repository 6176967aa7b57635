package searcher

import (
	"iter"
	"math"
	"slices"
)

// Policy returns every optimal action on state in ascending order, or nil if state is
// terminal. An action is optimal when the state it leads to has the same value as state.
func (s *Solver[P, A, S]) Policy(state S) ([]A, error) {
	i, err := s.tree.find(state)
	if err != nil {
		return nil, err
	}
	s.buildPolicy()
	return slices.Clone(s.policy[i]), nil
}

// All yields every state of the tree, in the tree's order, with its policy.
func (s *Solver[P, A, S]) All() iter.Seq2[S, []A] {
	return func(yield func(S, []A) bool) {
		s.buildPolicy()
		for _, i := range s.tree.sorted {
			if !yield(s.tree.nodes[i].state, slices.Clone(s.policy[i])) {
				return
			}
		}
	}
}

func (s *Solver[P, A, S]) buildPolicy() {
	s.Solve()
	s.policyOnce.Do(func() {
		nodes := s.tree.nodes
		policy := make([][]A, len(nodes))
		for i := range nodes {
			n := &nodes[i]
			if n.terminal() {
				continue
			}
			best := make([]A, 0, 1)
			for j, child := range n.children {
				if math.Abs(s.values[i]-s.values[child]) < s.tolerance {
					best = append(best, n.actions[j])
				}
			}
			policy[i] = best
		}
		s.policy = policy
	})
}
