// Package agent wraps move-selection strategies behind a single interface
// so a match engine can drive searchers and fixed policies uniformly.
package agent

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"ismcts/game"
	"ismcts/searcher"
)

type Agent interface {
	// FindMove returns the agent's move for the given state.
	FindMove(ctx context.Context, state game.State) (game.Move, error)
	// Observe reports a move played by any player, the agent's own moves
	// included, so stateful agents can track the game.
	Observe(mov game.Move)
}

// SearchAgent decides with an IS-MCTS searcher. When the searcher has tree
// reuse enabled, Observe advances the kept root along every played move.
type SearchAgent struct {
	mcts *searcher.MCTS
}

func NewSearchAgent(mcts *searcher.MCTS) *SearchAgent {
	return &SearchAgent{mcts: mcts}
}

func (a *SearchAgent) FindMove(ctx context.Context, state game.State) (game.Move, error) {
	result, err := a.mcts.Search(ctx, state)
	if err != nil {
		return nil, errors.Wrap(err, "agent: search failed")
	}
	if result.NoDecision {
		return nil, errors.New("agent: asked for a move in a terminal state")
	}
	return result.Move, nil
}

func (a *SearchAgent) Observe(mov game.Move) {
	a.mcts.Advance(mov)
}

// PolicyAgent decides with a fixed stochastic policy.
type PolicyAgent struct {
	policy game.Rollout
	rng    *rand.Rand
}

func NewPolicyAgent(policy game.Rollout, seed uint64) *PolicyAgent {
	return &PolicyAgent{
		policy: policy,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (a *PolicyAgent) FindMove(ctx context.Context, state game.State) (game.Move, error) {
	return a.policy(state, a.rng), nil
}

func (a *PolicyAgent) Observe(mov game.Move) {}

// NewRandomAgent plays uniformly at random, the baseline opponent.
func NewRandomAgent(seed uint64) *PolicyAgent {
	return NewPolicyAgent(searcher.RandomRollout, seed)
}
