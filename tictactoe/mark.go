package tictactoe

import "fmt"

// Mark is the state of a cell and doubles as the player token.
type Mark int8

const (
	Nought Mark = iota
	Cross
	Unmarked
)

func (m Mark) String() string {
	switch m {
	case Nought:
		return "O"
	case Cross:
		return "X"
	case Unmarked:
		return "-"
	default:
		return fmt.Sprintf("Mark(%d)", int8(m))
	}
}

func ParseMark(s string) (Mark, error) {
	switch s {
	case "O", "o":
		return Nought, nil
	case "X", "x":
		return Cross, nil
	default:
		return Unmarked, fmt.Errorf("unknown player %q, want X or O", s)
	}
}

// Opponent returns the other player. It panics on Unmarked or any other value.
func Opponent(m Mark) Mark {
	switch m {
	case Cross:
		return Nought
	case Nought:
		return Cross
	default:
		panic(fmt.Sprintf("invalid player %s", m))
	}
}
