package engine

import (
	"errors"
	"fmt"

	"gamesolver/game"
	"gamesolver/searcher"

	"github.com/rs/zerolog/log"
)

var ErrNoPolicy = errors.New("no optimal action on a non-terminal state")

type Update[P game.Player, A game.Ordered[A], S game.State[P, A, S]] struct {
	Step   int
	Player P
	Action A
	State  S // Tree node reached by Action; read only
}

// Engine plays a game from the root of a solved tree, each player following the solver's
// policy through its agent.
type Engine[P game.Player, A game.Ordered[A], S game.State[P, A, S]] struct {
	State  S
	solver *searcher.Solver[P, A, S]
	agents map[P]Agent[A]
}

// LocalEngine returns an engine at the solver's root. Players without an agent play the
// first optimal action.
func LocalEngine[P game.Player, A game.Ordered[A], S game.State[P, A, S]](solver *searcher.Solver[P, A, S], agents map[P]Agent[A]) *Engine[P, A, S] {
	if solver == nil {
		panic("engine needs a solver")
	}
	return &Engine[P, A, S]{
		State:  solver.Tree().Root(),
		solver: solver,
		agents: agents,
	}
}

// Run plays until a terminal state and returns every move played.
func (e *Engine[P, A, S]) Run() ([]Update[P, A, S], error) {
	log.Info().Msgf("player %v is starting", e.State.Player())

	updates := []Update[P, A, S]{}
	for step := 1; !e.State.IsTerminal(); step++ {
		if step > MaxMoves {
			return updates, fmt.Errorf("game did not end after %d moves", MaxMoves)
		}

		optimal, err := e.solver.Policy(e.State)
		if err != nil {
			return updates, fmt.Errorf("failed to find policy at step %d: %w", step, err)
		}
		if len(optimal) == 0 {
			return updates, ErrNoPolicy
		}

		player := e.State.Player()
		action := e.agent(player).Choose(optimal)
		next, err := e.solver.Tree().Destination(e.State, action)
		if err != nil {
			return updates, fmt.Errorf("agent of player %v chose %v: %w", player, action, err)
		}

		log.Debug().Int("step", step).Msgf("player %v plays %v", player, action)
		updates = append(updates, Update[P, A, S]{Step: step, Player: player, Action: action, State: next})
		e.State = next
	}

	if winner, ok := e.State.Winner(); ok {
		log.Info().Msgf("player %v wins after %d moves", winner, len(updates))
	} else {
		log.Info().Msgf("game tied after %d moves", len(updates))
	}
	return updates, nil
}

func (e *Engine[P, A, S]) agent(player P) Agent[A] {
	if a, ok := e.agents[player]; ok && a != nil {
		return a
	}
	return FirstAgent[A]()
}
