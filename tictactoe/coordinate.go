package tictactoe

import (
	"cmp"
	"fmt"
)

// Coordinate is a cell position, ordered row-major.
type Coordinate struct {
	Row    int
	Column int
}

func (c Coordinate) Compare(other Coordinate) int {
	if r := cmp.Compare(c.Row, other.Row); r != 0 {
		return r
	}
	return cmp.Compare(c.Column, other.Column)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}
