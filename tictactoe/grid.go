package tictactoe

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"gamesolver/game"
)

var (
	ErrInvalidSize = errors.New("grid size must be positive")
	ErrInvalidMark = errors.New("player must be X or O")
	ErrOutOfRange  = errors.New("coordinate is outside the grid")
	ErrOccupied    = errors.New("cell is already marked")
	ErrGameOver    = errors.New("game is over")
)

type Status int8

const (
	Ongoing Status = iota
	Won
	Tied
)

// Grid is a square Noughts-and-Crosses board. A line of size marks in a row, column or
// diagonal wins; a full board without such a line is a tie.
type Grid struct {
	size   int
	cells  []Mark // Row-major
	player Mark   // Player to move
	marked int
	status Status
	winner Mark // Unmarked unless status is Won
}

var _ game.State[Mark, Coordinate, *Grid] = (*Grid)(nil)

func NewGrid(first Mark, size int) (*Grid, error) {
	if first != Cross && first != Nought {
		return nil, ErrInvalidMark
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	cells := make([]Mark, size*size)
	for i := range cells {
		cells[i] = Unmarked
	}
	return &Grid{
		size:   size,
		cells:  cells,
		player: first,
		winner: Unmarked,
	}, nil
}

func (g *Grid) Copy() *Grid {
	c := *g
	c.cells = slices.Clone(g.cells)
	return &c
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) Player() Mark {
	return g.player
}

func (g *Grid) Status() Status {
	return g.status
}

// Cell returns the mark at c, or Unmarked if c is outside the grid.
func (g *Grid) Cell(c Coordinate) Mark {
	if !g.inside(c) {
		return Unmarked
	}
	return g.cells[c.Row*g.size+c.Column]
}

func (g *Grid) IsTerminal() bool {
	return g.status != Ongoing
}

func (g *Grid) Winner() (Mark, bool) {
	return g.winner, g.status == Won
}

// LegalActions returns the unmarked cells in row-major order.
func (g *Grid) LegalActions() []Coordinate {
	if g.IsTerminal() {
		return nil
	}
	actions := make([]Coordinate, 0, len(g.cells)-g.marked)
	for i, m := range g.cells {
		if m == Unmarked {
			actions = append(actions, Coordinate{Row: i / g.size, Column: i % g.size})
		}
	}
	return actions
}

// Apply marks c for the player to move and passes the turn to the opponent.
func (g *Grid) Apply(c Coordinate) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if !g.inside(c) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, c)
	}
	i := c.Row*g.size + c.Column
	if g.cells[i] != Unmarked {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}

	g.cells[i] = g.player
	g.marked++
	switch {
	case g.completesLine(c):
		g.status = Won
		g.winner = g.player
	case g.marked == len(g.cells):
		g.status = Tied
	}
	g.player = Opponent(g.player)
	return nil
}

func (g *Grid) inside(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.size && c.Column >= 0 && c.Column < g.size
}

// completesLine reports whether the mark at c completes a line through c.
func (g *Grid) completesLine(c Coordinate) bool {
	m := g.Cell(c)
	line := func(row, column, dRow, dColumn int) bool {
		for k := 0; k < g.size; k++ {
			if g.Cell(Coordinate{Row: row + k*dRow, Column: column + k*dColumn}) != m {
				return false
			}
		}
		return true
	}

	if line(c.Row, 0, 0, 1) || line(0, c.Column, 1, 0) {
		return true
	}
	if c.Row == c.Column && line(0, 0, 1, 1) {
		return true
	}
	return c.Row+c.Column == g.size-1 && line(0, g.size-1, 1, -1)
}

// Compare orders grids by size, number of marks, player to move and then cells.
func (g *Grid) Compare(other *Grid) int {
	if g == other {
		return 0
	}
	if c := cmp.Compare(g.size, other.size); c != 0 {
		return c
	}
	if c := cmp.Compare(g.marked, other.marked); c != 0 {
		return c
	}
	if c := cmp.Compare(g.player, other.player); c != 0 {
		return c
	}
	return slices.Compare(g.cells, other.cells)
}

func (g *Grid) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(g.size))
	binary.Write(hasher, binary.LittleEndian, int8(g.player))
	for _, m := range g.cells {
		binary.Write(hasher, binary.LittleEndian, int8(m))
	}

	return game.StateHash(hasher.Sum64())
}

func (g *Grid) String() string {
	sb := strings.Builder{}
	for row := 0; row < g.size; row++ {
		for _, m := range g.cells[row*g.size : (row+1)*g.size] {
			sb.WriteString(m.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
