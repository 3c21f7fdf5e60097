package nim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ismcts/game"
	"ismcts/searcher"
)

func TestLegalMoves(t *testing.T) {
	t.Run("enumerating every take from every heap", func(t *testing.T) {
		state := NewState([]int{2, 1}, Standard)

		moves := state.LegalMoves()

		require.Equal(t, []game.Move{
			Move{Heap: 0, Amount: 1},
			Move{Heap: 0, Amount: 2},
			Move{Heap: 1, Amount: 1},
		}, moves)
	})

	t.Run("empty heaps offer nothing", func(t *testing.T) {
		state := NewState([]int{0, 0}, Standard)

		require.Empty(t, state.LegalMoves())
		require.True(t, state.IsTerminal())
	})
}

func TestPlay(t *testing.T) {
	t.Run("removing objects and passing the turn", func(t *testing.T) {
		state := NewState([]int{3}, Standard)

		next := state.Play(Move{Heap: 0, Amount: 2}).(State)

		require.Equal(t, []int{1}, next.heaps)
		require.Equal(t, P2, next.Player())
		require.Equal(t, []int{3}, state.heaps, "The original state is never mutated")
	})

	t.Run("rejecting an oversized take", func(t *testing.T) {
		state := NewState([]int{1}, Standard)

		require.Panics(t, func() { state.Play(Move{Heap: 0, Amount: 2}) })
	})

	t.Run("rejecting an out of bounds heap", func(t *testing.T) {
		state := NewState([]int{1}, Standard)

		require.Panics(t, func() { state.Play(Move{Heap: 1, Amount: 1}) })
	})
}

func TestRewards(t *testing.T) {
	t.Run("standard play rewards taking the last object", func(t *testing.T) {
		end := NewState([]int{1}, Standard).Play(Move{Heap: 0, Amount: 1})

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: 1, P2: -1}, end.Rewards())
	})

	t.Run("misere play punishes taking the last object", func(t *testing.T) {
		end := NewState([]int{1}, Misere).Play(Move{Heap: 0, Amount: 1})

		require.True(t, end.IsTerminal())
		require.Equal(t, map[game.Player]float64{P1: -1, P2: 1}, end.Rewards())
	})
}

func TestSearchFindsWinningMove(t *testing.T) {
	t.Run("standard: take the whole heap", func(t *testing.T) {
		mcts, err := searcher.NewMCTS(searcher.WithIterations(2000), searcher.WithSeed(1))
		require.NoError(t, err)

		result, err := mcts.Search(context.Background(), NewState([]int{2}, Standard))

		require.NoError(t, err)
		require.Equal(t, game.Move(Move{Heap: 0, Amount: 2}), result.Move)
	})

	t.Run("misere: leave the last object", func(t *testing.T) {
		mcts, err := searcher.NewMCTS(searcher.WithIterations(2000), searcher.WithSeed(1))
		require.NoError(t, err)

		result, err := mcts.Search(context.Background(), NewState([]int{2}, Misere))

		require.NoError(t, err)
		require.Equal(t, game.Move(Move{Heap: 0, Amount: 1}), result.Move)
	})
}
