package searcher

import "math"

// DefaultExploration is the default UCB exploration constant.
const DefaultExploration = math.Sqrt2

// ucb scores a move by its mean reward plus an exploration bonus. The bonus
// numerator is the move's availability count rather than the parent's visit
// count: a move that was rarely legal across determinizations is not
// under-explored, and a move that was often legal but rarely chosen is.
// This is the correction that distinguishes IS-MCTS from plain UCT.
type ucb struct {
	c float64
}

// evaluate computes q/n + c*sqrt(ln(m)/n) where q is the cumulative reward,
// n the visit count and m the availability count.
func (u ucb) evaluate(q, n, m float64) float64 {
	if n == 0 {
		panic("cannot compute UCB: 0 visits")
	}
	if m == 0 {
		panic("cannot compute UCB: 0 availability")
	}
	return q/n + u.c*math.Sqrt(math.Log(m)/n)
}
