package searcher

import (
	"reflect"

	"gamesolver/game"
)

type node[A game.Ordered[A], S any] struct {
	state    S
	actions  []A   // Ascending, nil on a terminal state
	children []int // children[i] is the node reached by actions[i]
}

func (n *node[A, S]) terminal() bool {
	return n.actions == nil
}

func compare[T game.Ordered[T]](a, b T) int {
	return a.Compare(b)
}

// isNil reports whether v is a nil interface or a nil pointer-like value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
