package game

import (
	"golang.org/x/exp/rand"
)

// Player identifies one participant in a game.
type Player string

// InfoSetKey is a canonical encoding of everything one player has observed:
// the public move history plus that player's private knowledge. Two concrete
// states the observer cannot tell apart must encode to the same key. The
// encoding is opaque to the searcher and does not need to be human-readable.
type InfoSetKey string

// Move is a single action a player can take. Concrete move types must be
// comparable: the searcher keys tree edges by move value.
type Move interface {
	String() string
}

// State is one concrete game state, hidden information included.
// State is immutable - operations on State always return a new copy.
type State interface {
	// Player returns the acting player. Undefined for terminal states.
	Player() Player
	// LegalMoves returns the acting player's moves in a stable order.
	// The list is empty if and only if the state is terminal.
	LegalMoves() []Move
	// Play applies a legal move and returns the successor state without
	// mutating the receiver.
	Play(Move) State
	IsTerminal() bool
	// Rewards returns the terminal payoff per player. Defined only when
	// IsTerminal reports true.
	Rewards() map[Player]float64
	// InfoSetKey encodes the state as seen by the observer.
	InfoSetKey(observer Player) InfoSetKey
	// Determinize samples a fresh concrete state consistent with the
	// observer's information set: hidden information is re-randomized,
	// everything the observer has seen is preserved. The returned state
	// must satisfy
	//
	//	returned.InfoSetKey(observer) == s.InfoSetKey(observer)
	//
	// This is a precondition on implementations, not checked by the
	// searcher; violating it silently corrupts search statistics.
	Determinize(observer Player, rng *rand.Rand) State
}

// Evaluate scores a non-terminal state as an estimated payoff per player,
// for rollouts cut off before the game ends.
type Evaluate func(State) map[Player]float64

// Rollout picks the next move during simulation. The returned move must be
// one of state.LegalMoves().
type Rollout func(state State, rng *rand.Rand) Move
