package experiments

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ismcts/experiments/metrics"
	"ismcts/game/kuhn"
	"ismcts/searcher"
)

// RunSpeedup measures iteration throughput of a fixed duration budget
// across worker counts, searching the same Kuhn deal each time.
func RunSpeedup(config Config) ([]metrics.AgentConfig, []metrics.SearchRecord, error) {
	log.Info().Msgf("starting speedup experiment: goroutines %v...", config.Speedup.Goroutines)

	configs := make([]metrics.AgentConfig, 0, len(config.Speedup.Goroutines))
	records := make([]metrics.SearchRecord, 0, len(config.Speedup.Goroutines))

	rng := rand.New(rand.NewSource(config.Seed))
	state := kuhn.Deal(rng)

	for i, goroutines := range config.Speedup.Goroutines {
		agentConfig := metrics.AgentConfig{
			ID:         i + 1,
			Goroutines: goroutines,
			Duration:   time.Duration(config.Speedup.Duration),
			Seed:       config.Seed,
		}
		configs = append(configs, agentConfig)

		mcts, err := searcher.NewMCTS(
			searcher.WithDuration(agentConfig.Duration),
			searcher.WithGoroutines(agentConfig.Goroutines),
			searcher.WithSeed(agentConfig.Seed),
			searcher.WithMetrics(),
		)
		if err != nil {
			return nil, nil, err
		}

		result, err := mcts.Search(context.Background(), state)
		if err != nil {
			return nil, nil, err
		}

		log.Info().Msgf("%d goroutines: %d iterations in %s", goroutines, result.Iterations, result.Metrics.Duration)
		records = append(records, metrics.SearchRecord{
			Agent:        agentConfig.ID,
			Goroutines:   goroutines,
			Duration:     result.Metrics.Duration,
			Iterations:   result.Metrics.Iterations,
			FullPlayouts: result.Metrics.FullPlayouts,
			Expansions:   result.Metrics.Expansions,
		})
	}
	return configs, records, nil
}
