package searcher

import (
	"golang.org/x/exp/rand"

	"ismcts/game"
)

// RandomRollout is the default rollout policy: uniform random among legal
// moves.
func RandomRollout(state game.State, rng *rand.Rand) game.Move {
	moves := legalMoves(state)
	return moves[rng.Intn(len(moves))]
}
