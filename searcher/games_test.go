package searcher

import (
	"golang.org/x/exp/rand"

	"ismcts/game"
)

// Test games. Both are deliberately tiny so tree statistics can be checked
// exactly.

type testMove string

func (m testMove) String() string { return string(m) }

const gambler game.Player = "gambler"

// banditState is a single-decision, single-player, full-information game:
// each move pays a fixed reward and ends the game.
type banditState struct {
	moves   []game.Move
	payoffs map[testMove]float64
	played  bool
	outcome float64
}

func newBandit(payoffs map[testMove]float64, order ...testMove) banditState {
	moves := make([]game.Move, 0, len(order))
	for _, m := range order {
		moves = append(moves, m)
	}
	return banditState{moves: moves, payoffs: payoffs}
}

func (s banditState) Player() game.Player { return gambler }

func (s banditState) LegalMoves() []game.Move {
	if s.played {
		return nil
	}
	return s.moves
}

func (s banditState) Play(mov game.Move) game.State {
	next := s
	next.played = true
	next.outcome = s.payoffs[mov.(testMove)]
	return next
}

func (s banditState) IsTerminal() bool { return s.played }

func (s banditState) Rewards() map[game.Player]float64 {
	return map[game.Player]float64{gambler: s.outcome}
}

func (s banditState) InfoSetKey(observer game.Player) game.InfoSetKey {
	if s.played {
		return "bandit:over"
	}
	return "bandit"
}

func (s banditState) Determinize(observer game.Player, rng *rand.Rand) game.State {
	return s
}

const guesser game.Player = "guesser"

// coinState has a single root information set covering two hidden states of
// equal probability. Move "heads" is legal only in one determinization,
// "tails" only in the other, which exercises the availability correction.
type coinState struct {
	coin   int // hidden, re-flipped by Determinize
	played bool
}

func (s coinState) Player() game.Player { return guesser }

func (s coinState) LegalMoves() []game.Move {
	if s.played {
		return nil
	}
	if s.coin == 0 {
		return []game.Move{testMove("heads")}
	}
	return []game.Move{testMove("tails")}
}

func (s coinState) Play(mov game.Move) game.State {
	next := s
	next.played = true
	return next
}

func (s coinState) IsTerminal() bool { return s.played }

func (s coinState) Rewards() map[game.Player]float64 {
	return map[game.Player]float64{guesser: 1}
}

func (s coinState) InfoSetKey(observer game.Player) game.InfoSetKey {
	// The coin is hidden from the observer: both determinizations share a key
	if s.played {
		return "coin:over"
	}
	return "coin"
}

func (s coinState) Determinize(observer game.Player, rng *rand.Rand) game.State {
	next := s
	next.coin = rng.Intn(2)
	return next
}

// alternating is a two-player game of fixed length: players alternate
// picking digits, and the player who picks the last digit scores 1 when the
// digit matches their seat. Adapted to exercise deeper trees.
type alternating struct {
	picks []int
	turns int
	width int
}

func newAlternating(turns, width int) alternating {
	return alternating{turns: turns, width: width}
}

func (s alternating) Player() game.Player {
	if len(s.picks)%2 == 0 {
		return "first"
	}
	return "second"
}

func (s alternating) LegalMoves() []game.Move {
	if s.IsTerminal() {
		return nil
	}
	moves := make([]game.Move, 0, s.width)
	for i := 0; i < s.width; i++ {
		moves = append(moves, testMove(rune('a'+i)))
	}
	return moves
}

func (s alternating) Play(mov game.Move) game.State {
	picks := make([]int, len(s.picks), len(s.picks)+1)
	copy(picks, s.picks)
	next := s
	next.picks = append(picks, int([]rune(string(mov.(testMove)))[0]-'a'))
	return next
}

func (s alternating) IsTerminal() bool { return len(s.picks) >= s.turns }

func (s alternating) Rewards() map[game.Player]float64 {
	last := s.picks[len(s.picks)-1]
	rewards := map[game.Player]float64{"first": 0, "second": 0}
	if last%2 == 0 {
		rewards["second"] = 1
	} else {
		rewards["first"] = 1
	}
	return rewards
}

func (s alternating) InfoSetKey(observer game.Player) game.InfoSetKey {
	key := []byte{byte(observer[0])}
	for _, p := range s.picks {
		key = append(key, byte('a'+p))
	}
	return game.InfoSetKey(key)
}

func (s alternating) Determinize(observer game.Player, rng *rand.Rand) game.State {
	return s
}
