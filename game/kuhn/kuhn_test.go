package kuhn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"ismcts/game"
	"ismcts/searcher"
)

func deal(first, second Card) State {
	return State{
		cards: [2]Card{first, second},
		banks: [2]float64{-1, -1},
		pot:   2,
	}
}

func play(t *testing.T, state game.State, moves ...Move) game.State {
	t.Helper()
	for _, m := range moves {
		require.Contains(t, state.LegalMoves(), game.Move(m), "move %s should be legal", m)
		state = state.Play(m)
	}
	return state
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		state := Deal(rng)

		require.NotEqual(t, state.cards[0], state.cards[1], "The deck has one card of each rank")
		require.Equal(t, [2]float64{-1, -1}, state.banks, "Both players ante one")
		require.Equal(t, 2.0, state.pot)
		require.Equal(t, P1, state.Player())
		require.False(t, state.IsTerminal())
	}
}

func TestBettingLines(t *testing.T) {
	t.Run("check check goes to showdown", func(t *testing.T) {
		end := play(t, deal(King, Queen), Check, Check)

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: 1, P2: -1}, end.Rewards(),
			"The higher card wins the antes")
	})

	t.Run("bet fold awards the pot without showdown", func(t *testing.T) {
		end := play(t, deal(Jack, King), Bet, Fold)

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: 1, P2: -1}, end.Rewards(),
			"Folding surrenders the antes even against the better card")
	})

	t.Run("bet call doubles the stakes", func(t *testing.T) {
		end := play(t, deal(Queen, King), Bet, Call)

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: -2, P2: 2}, end.Rewards())
	})

	t.Run("check bet fold", func(t *testing.T) {
		end := play(t, deal(King, Queen), Check, Bet, Fold)

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: -1, P2: 1}, end.Rewards())
	})

	t.Run("check bet call", func(t *testing.T) {
		end := play(t, deal(King, Queen), Check, Bet, Call)

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: 2, P2: -2}, end.Rewards())
	})

	t.Run("rewards are zero-sum on every line", func(t *testing.T) {
		lines := [][]Move{
			{Check, Check},
			{Check, Bet, Fold},
			{Check, Bet, Call},
			{Bet, Fold},
			{Bet, Call},
		}
		for _, line := range lines {
			end := play(t, deal(Queen, Jack), line...)

			rewards := end.Rewards()
			require.Equal(t, 0.0, rewards[P1]+rewards[P2], "line %v should be zero-sum", line)
		}
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening options", func(t *testing.T) {
		require.Equal(t, []game.Move{Check, Bet}, deal(King, Queen).LegalMoves())
	})

	t.Run("responding to a check", func(t *testing.T) {
		state := play(t, deal(King, Queen), Check)

		require.Equal(t, []game.Move{Check, Bet}, state.LegalMoves())
		require.Equal(t, P2, state.Player())
	})

	t.Run("responding to a bet", func(t *testing.T) {
		state := play(t, deal(King, Queen), Bet)

		require.Equal(t, []game.Move{Fold, Call}, state.LegalMoves())
	})

	t.Run("facing a raise after checking", func(t *testing.T) {
		state := play(t, deal(King, Queen), Check, Bet)

		require.Equal(t, []game.Move{Fold, Call}, state.LegalMoves())
		require.Equal(t, P1, state.Player())
	})

	t.Run("no moves at a terminal state", func(t *testing.T) {
		require.Empty(t, play(t, deal(King, Queen), Bet, Fold).LegalMoves())
	})
}

func TestInfoSetKey(t *testing.T) {
	t.Run("hiding the opponent's card", func(t *testing.T) {
		a := deal(King, Queen)
		b := deal(King, Jack)

		require.Equal(t, a.InfoSetKey(P1), b.InfoSetKey(P1),
			"player1 cannot distinguish deals differing only in player2's card")
		require.NotEqual(t, a.InfoSetKey(P2), b.InfoSetKey(P2),
			"player2 sees their own card")
	})

	t.Run("exposing the public history", func(t *testing.T) {
		a := play(t, deal(King, Queen), Check)
		b := play(t, deal(King, Queen), Bet)

		require.NotEqual(t, a.InfoSetKey(P2), b.InfoSetKey(P2),
			"The betting history is public knowledge")
	})
}

func TestDeterminize(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	state := play(t, deal(King, Queen), Check)

	for i := 0; i < 50; i++ {
		det := state.Determinize(P1, rng).(State)

		require.Equal(t, King, det.cards[0], "The observer's card is fixed")
		require.NotEqual(t, King, det.cards[1], "The hidden card is re-dealt from the rest of the deck")
		require.Equal(t, state.InfoSetKey(P1), det.InfoSetKey(P1),
			"Determinization must stay inside the observer's information set")
	}
}

func TestEquilibriumResponse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("always playing the king", func(t *testing.T) {
		afterCheck := play(t, deal(Queen, King), Check)
		afterBet := play(t, deal(Queen, King), Bet)

		require.Equal(t, game.Move(Bet), EquilibriumResponse(afterCheck, rng))
		require.Equal(t, game.Move(Call), EquilibriumResponse(afterBet, rng))
	})

	t.Run("never calling a bet with the jack", func(t *testing.T) {
		afterBet := play(t, deal(Queen, Jack), Bet)

		for i := 0; i < 30; i++ {
			require.Equal(t, game.Move(Fold), EquilibriumResponse(afterBet, rng))
		}
	})

	t.Run("never betting the queen after a check", func(t *testing.T) {
		afterCheck := play(t, deal(King, Queen), Check)

		for i := 0; i < 30; i++ {
			require.Equal(t, game.Move(Check), EquilibriumResponse(afterCheck, rng))
		}
	})
}

func TestSearchNeverFoldsTheKing(t *testing.T) {
	// Facing a bet with the king: calling wins the doubled pot in every
	// determinization, folding forfeits the ante. Dominant in the strictest
	// sense, so the searcher must find it.
	state := play(t, deal(King, Queen), Check, Bet)
	mcts, err := searcher.NewMCTS(searcher.WithIterations(500), searcher.WithSeed(1))
	require.NoError(t, err)

	result, err := mcts.Search(context.Background(), state)

	require.NoError(t, err)
	require.Equal(t, game.Move(Call), result.Move)
}
