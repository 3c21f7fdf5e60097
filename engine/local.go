// Package engine runs complete games between agents.
package engine

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"ismcts/agent"
	"ismcts/game"
)

// MaxTurns caps runaway games.
const MaxTurns = 500

type Engine struct {
	state  game.State
	agents map[game.Player]agent.Agent
	turns  int
}

// LocalEngine builds an engine playing out from state, with one agent per
// player appearing in the game.
func LocalEngine(state game.State, agents map[game.Player]agent.Agent) *Engine {
	if len(agents) == 0 {
		panic("need at least one agent")
	}
	return &Engine{state: state, agents: agents}
}

// Run executes the game loop until a terminal state and returns the final
// rewards per player.
func (e *Engine) Run(ctx context.Context) (map[game.Player]float64, error) {
	for turn := 1; turn <= MaxTurns; turn++ {
		if e.state.IsTerminal() {
			rewards := e.state.Rewards()
			log.Info().Int("turns", e.turns).Msg("game over")
			return rewards, nil
		}

		player := e.state.Player()
		ag, ok := e.agents[player]
		if !ok {
			return nil, errors.Errorf("engine: no agent for player %s", player)
		}

		mov, err := ag.FindMove(ctx, e.state)
		if err != nil {
			return nil, errors.Wrapf(err, "engine: player %s turn %d", player, turn)
		}
		log.Debug().Msgf("player %s plays %s", player, mov)

		e.state = e.state.Play(mov)
		e.turns++
		for _, observer := range e.agents {
			observer.Observe(mov)
		}
	}
	return nil, errors.Errorf("engine: no terminal state after %d turns", MaxTurns)
}

// Turns returns the number of moves played so far.
func (e *Engine) Turns() int {
	return e.turns
}

// State returns the engine's current state.
func (e *Engine) State() game.State {
	return e.state
}
