// Package nim implements Nim with standard and misère win conditions. The
// game is perfect-information, so determinization is the identity; it
// exists to test the searcher's convergence without hidden state.
package nim

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"ismcts/game"
)

const (
	P1 game.Player = "player1"
	P2 game.Player = "player2"
)

// Mode selects the win condition.
type Mode int

const (
	// Standard: whoever takes the last object wins.
	Standard Mode = iota
	// Misere: whoever takes the last object loses.
	Misere
)

// Move removes Amount objects from heap Heap.
type Move struct {
	Heap   int
	Amount int
}

func (m Move) String() string {
	return fmt.Sprintf("take %d from heap %d", m.Amount, m.Heap)
}

type State struct {
	heaps  []int
	mode   Mode
	toMove game.Player
}

func NewState(heaps []int, mode Mode) State {
	owned := make([]int, len(heaps))
	copy(owned, heaps)
	return State{heaps: owned, mode: mode, toMove: P1}
}

func (s State) Player() game.Player {
	return s.toMove
}

func (s State) LegalMoves() []game.Move {
	var moves []game.Move
	for heap, amount := range s.heaps {
		for take := 1; take <= amount; take++ {
			moves = append(moves, Move{Heap: heap, Amount: take})
		}
	}
	return moves
}

func (s State) Play(mov game.Move) game.State {
	m, ok := mov.(Move)
	if !ok {
		panic("unexpected move type")
	}
	if m.Heap < 0 || m.Heap >= len(s.heaps) {
		panic("move on out of bounds heap")
	}
	if m.Amount < 1 || m.Amount > s.heaps[m.Heap] {
		panic("taking more than heap contains")
	}

	heaps := make([]int, len(s.heaps))
	copy(heaps, s.heaps)
	heaps[m.Heap] -= m.Amount

	return State{heaps: heaps, mode: s.mode, toMove: other(s.toMove)}
}

func (s State) IsTerminal() bool {
	for _, amount := range s.heaps {
		if amount > 0 {
			return false
		}
	}
	return true
}

func (s State) Rewards() map[game.Player]float64 {
	// toMove already advanced past the player who emptied the last heap
	tookLast := other(s.toMove)
	winner := tookLast
	if s.mode == Misere {
		winner = other(tookLast)
	}
	return map[game.Player]float64{
		winner:        1,
		other(winner): -1,
	}
}

func (s State) InfoSetKey(observer game.Player) game.InfoSetKey {
	// Perfect information: every player observes the whole state
	var b strings.Builder
	b.WriteString(string(s.toMove))
	for _, amount := range s.heaps {
		fmt.Fprintf(&b, ":%d", amount)
	}
	return game.InfoSetKey(b.String())
}

func (s State) Determinize(observer game.Player, rng *rand.Rand) game.State {
	// Nothing is hidden; the only determinization is the state itself
	return s
}

func other(p game.Player) game.Player {
	if p == P1 {
		return P2
	}
	return P1
}
