// Package kuhn implements Kuhn poker, a three-card betting game and the
// smallest standard benchmark for imperfect-information search: each player
// sees only their own card, so determinization re-deals the opponent's.
package kuhn

import (
	"strings"

	"golang.org/x/exp/rand"

	"ismcts/game"
)

const (
	P1 game.Player = "player1"
	P2 game.Player = "player2"
)

// Card is one of the three-card deck, ordered by strength.
type Card int

const (
	Jack Card = iota
	Queen
	King
)

func (c Card) String() string {
	switch c {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return "?"
}

type Move int

const (
	Check Move = iota
	Bet
	Fold
	Call
)

func (m Move) String() string {
	switch m {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Fold:
		return "fold"
	case Call:
		return "call"
	}
	return "?"
}

// State is one concrete Kuhn poker state, both hole cards included.
type State struct {
	cards   [2]Card // indexed by player: 0 is player1's card
	history []Move
	banks   [2]float64
	pot     float64
	over    bool
}

// Deal antes both players and deals two distinct cards.
func Deal(rng *rand.Rand) State {
	first := Card(rng.Intn(3))
	second := dealOther(first, rng)
	return State{
		cards: [2]Card{first, second},
		banks: [2]float64{-1, -1},
		pot:   2,
	}
}

func dealOther(other Card, rng *rand.Rand) Card {
	for {
		c := Card(rng.Intn(3))
		if c != other {
			return c
		}
	}
}

func (s State) Player() game.Player {
	if len(s.history)%2 == 0 {
		return P1
	}
	return P2
}

func (s State) LegalMoves() []game.Move {
	if s.over {
		return nil
	}
	switch len(s.history) {
	case 0:
		return []game.Move{Check, Bet}
	case 1:
		if s.history[0] == Check {
			return []game.Move{Check, Bet}
		}
		return []game.Move{Fold, Call}
	case 2:
		// Only the check-then-bet line continues
		return []game.Move{Fold, Call}
	}
	return nil
}

func (s State) Play(mov game.Move) game.State {
	m, ok := mov.(Move)
	if !ok {
		panic("unexpected move type")
	}
	next := s.copy()

	switch {
	case m == Check && len(next.history) == 1 && next.history[0] == Check:
		next.awardPot(next.victor())
	case m == Check:
	case m == Fold:
		next.awardPot(next.opponent())
	case m == Bet:
		next.bet(next.playerIndex())
	case m == Call:
		next.bet(next.playerIndex())
		next.awardPot(next.victor())
	}

	next.history = append(next.history, m)
	return next
}

func (s State) IsTerminal() bool {
	return s.over
}

func (s State) Rewards() map[game.Player]float64 {
	return map[game.Player]float64{
		P1: s.banks[0],
		P2: s.banks[1],
	}
}

func (s State) InfoSetKey(observer game.Player) game.InfoSetKey {
	var b strings.Builder
	b.WriteString(string(observer))
	b.WriteByte(':')
	b.WriteString(s.cards[playerIndex(observer)].String())
	b.WriteByte(':')
	for i, m := range s.history {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(m.String())
	}
	return game.InfoSetKey(b.String())
}

// Determinize re-deals the opponent's hidden card; the observer's card and
// the public betting history are preserved.
func (s State) Determinize(observer game.Player, rng *rand.Rand) game.State {
	next := s.copy()
	own := playerIndex(observer)
	next.cards[1-own] = dealOther(next.cards[own], rng)
	return next
}

func (s State) copy() State {
	history := make([]Move, len(s.history))
	copy(history, s.history)
	next := s
	next.history = history
	return next
}

func (s State) playerIndex() int {
	return len(s.history) % 2
}

func playerIndex(p game.Player) int {
	if p == P1 {
		return 0
	}
	return 1
}

// victor compares hole cards; the deck has one of each, so no ties.
func (s State) victor() int {
	if s.cards[0] > s.cards[1] {
		return 0
	}
	return 1
}

func (s State) opponent() int {
	return 1 - s.playerIndex()
}

func (s *State) awardPot(winner int) {
	s.banks[winner] += s.pot
	s.pot = 0
	s.over = true
}

func (s *State) bet(player int) {
	s.banks[player]--
	s.pot++
}

// EquilibriumResponse plays the second player's Nash equilibrium strategy:
// always play the king, call a bet with the queen one third of the time,
// bluff-bet the jack after a check one third of the time. It is a
// game.Rollout usable as a fixed benchmark opponent.
func EquilibriumResponse(state game.State, rng *rand.Rand) game.Move {
	s, ok := state.(State)
	if !ok {
		panic("unexpected state type")
	}
	if len(s.history) != 1 {
		panic("second player only acts after the opening move")
	}

	checkBet := s.history[0] == Check
	oneThird := rng.Float64() < 1.0/3.0
	switch {
	case s.cards[1] == King && checkBet:
		return Bet
	case s.cards[1] == King:
		return Call
	case s.cards[1] == Queen && checkBet:
		return Check
	case s.cards[1] == Queen && oneThird:
		return Call
	case s.cards[1] == Queen:
		return Fold
	case s.cards[1] == Jack && checkBet && oneThird:
		return Bet
	case s.cards[1] == Jack && checkBet:
		return Check
	default:
		return Fold
	}
}
