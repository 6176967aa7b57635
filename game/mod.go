package game

import "golang.org/x/exp/constraints"

// Player identifies whose turn it is. Any ordered comparable token will do.
type Player interface {
	constraints.Ordered
}

// Ordered is implemented by values with a total order consistent with equality:
// a.Compare(b) == 0 iff a and b are structurally equal.
type Ordered[T any] interface {
	Compare(other T) int
}

type StateHash uint64

// State is a position of a finite, perfect-information, turn-based two-player game.
//
// Apply is the only mutator; it plays the action for the current player and hands the
// turn to the opponent. Everything else must leave the state unchanged. Compare is the
// deduplication key of a game tree and Hash must agree with it (states that compare
// equal hash equal).
type State[P Player, A Ordered[A], S any] interface {
	Ordered[S]
	Player() P
	IsTerminal() bool
	// Winner is informational only; ok is false when there is no winner (yet).
	Winner() (winner P, ok bool)
	// LegalActions returns the actions in ascending order, or nil on a terminal state.
	LegalActions() []A
	Apply(action A) error
	Copy() S
	Hash() StateHash
	String() string
}

// Opponent returns the other player. It must be involutive and should panic on a player
// that does not belong to the game.
type Opponent[P Player] func(player P) P

// Evaluate scores a terminal state from the given player's perspective: positive for a
// win, negative for a loss and zero for a tie.
type Evaluate[P Player, S any] func(state S, player P) float64
