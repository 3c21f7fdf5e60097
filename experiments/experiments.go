// Package experiments benchmarks the searcher on Kuhn poker: playing
// strength against a fixed equilibrium opponent, and iteration throughput
// across worker counts.
package experiments

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"ismcts/agent"
	"ismcts/engine"
	"ismcts/experiments/metrics"
	"ismcts/game"
	"ismcts/game/kuhn"
	"ismcts/searcher"
)

// Summary aggregates per-game rewards of one experiment.
type Summary struct {
	Games      int
	MeanReward float64
	StdErr     float64
}

// RunKuhnExploitation plays the searcher as the first player against the
// second player's equilibrium strategy and reports the searcher's average
// winnings per game. Kuhn poker's game value for the first player is -1/18
// per game; a searcher converging to equilibrium approaches that from
// below.
func RunKuhnExploitation(config Config) (Summary, []metrics.GameRecord, error) {
	log.Info().Msgf("starting Kuhn exploitation experiment: %d games...", config.Games)

	rewards := make([]float64, 0, config.Games)
	records := make([]metrics.GameRecord, 0, config.Games)
	for i := 0; i < config.Games; i++ {
		gameSeed := config.Seed + uint64(i)
		start := time.Now()

		reward, turns, err := playKuhnGame(config, gameSeed)
		if err != nil {
			return Summary{}, nil, err
		}

		rewards = append(rewards, reward)
		records = append(records, metrics.GameRecord{
			ID:       i + 1,
			Agent:    1,
			Reward:   reward,
			Turns:    turns,
			Duration: time.Since(start),
		})
	}

	summary := Summary{
		Games:      config.Games,
		MeanReward: stat.Mean(rewards, nil),
		StdErr:     stat.StdDev(rewards, nil) / math.Sqrt(float64(len(rewards))),
	}
	log.Info().Msgf("finished Kuhn exploitation experiment: mean reward %.4f ± %.4f", summary.MeanReward, summary.StdErr)
	return summary, records, nil
}

func playKuhnGame(config Config, seed uint64) (reward float64, turns int, err error) {
	mcts, err := searcher.NewMCTS(
		searcher.WithIterations(config.Iterations),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithSeed(seed),
	)
	if err != nil {
		return 0, 0, err
	}

	rng := rand.New(rand.NewSource(seed))
	state := kuhn.Deal(rng)
	agents := map[game.Player]agent.Agent{
		kuhn.P1: agent.NewSearchAgent(mcts),
		kuhn.P2: agent.NewPolicyAgent(kuhn.EquilibriumResponse, seed),
	}

	eng := engine.LocalEngine(state, agents)
	result, err := eng.Run(context.Background())
	if err != nil {
		return 0, 0, err
	}
	return result[kuhn.P1], eng.Turns(), nil
}
