package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ismcts/experiments"
	"ismcts/experiments/metrics"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config := experiments.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		config, err = experiments.LoadConfig(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	runKuhnExploitation(config)
	runSpeedup(config)
}

func runKuhnExploitation(config experiments.Config) {
	summary, records, err := experiments.RunKuhnExploitation(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Kuhn exploitation experiment failed")
	}
	fmt.Printf("Kuhn poker vs equilibrium opponent over %d games: %.4f ± %.4f per game\n",
		summary.Games, summary.MeanReward, summary.StdErr)

	writer, err := metrics.NewWriter("kuhn_exploitation")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	err = writer.WriteGameRecords(records)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store game records")
	}
}

func runSpeedup(config experiments.Config) {
	configs, records, err := experiments.RunSpeedup(config)
	if err != nil {
		log.Fatal().Err(err).Msg("speedup experiment failed")
	}
	for _, record := range records {
		fmt.Printf("%3d goroutines: %d iterations in %s\n",
			record.Goroutines, record.Iterations, record.Duration)
	}

	writer, err := metrics.NewWriter("speedup")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store agent configs")
	}
	err = writer.WriteSearchRecords(records)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store search records")
	}
}
