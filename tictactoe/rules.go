package tictactoe

const (
	Win  = 1.0
	Loss = -Win
	Tie  = 0.0
)

// Evaluate scores a finished grid for player. It panics on a grid still in play.
func Evaluate(g *Grid, player Mark) float64 {
	if !g.IsTerminal() {
		panic("cannot evaluate a grid still in play")
	}
	winner, ok := g.Winner()
	switch {
	case !ok:
		return Tie
	case winner == player:
		return Win
	default:
		return Loss
	}
}
