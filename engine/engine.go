package engine

import "golang.org/x/exp/rand"

// MaxMoves bounds a game played by an engine.
const MaxMoves = 10000

// Agent picks the action to play among the optimal actions of a state.
type Agent[A any] interface {
	Choose(optimal []A) A
}

type firstAgent[A any] struct{}

// FirstAgent always plays the smallest optimal action.
func FirstAgent[A any]() Agent[A] {
	return firstAgent[A]{}
}

func (firstAgent[A]) Choose(optimal []A) A {
	return optimal[0]
}

type randomAgent[A any] struct {
	rng *rand.Rand
}

// RandomAgent plays a uniformly random optimal action. Agents with the same seed play
// the same games.
func RandomAgent[A any](seed uint64) Agent[A] {
	return &randomAgent[A]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[A]) Choose(optimal []A) A {
	return optimal[a.rng.Intn(len(optimal))]
}
