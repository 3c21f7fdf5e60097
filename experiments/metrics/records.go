package metrics

import "time"

// AgentConfig identifies one searcher configuration under test.
type AgentConfig struct {
	ID         int
	Goroutines int
	Iterations int
	Duration   time.Duration
	Seed       uint64
}

// GameRecord captures one completed benchmark game.
type GameRecord struct {
	ID       int
	Agent    int // AgentConfig.ID
	Reward   float64
	Turns    int
	Duration time.Duration
}

// SearchRecord captures one timed search.
type SearchRecord struct {
	Agent        int // AgentConfig.ID
	Goroutines   int
	Duration     time.Duration
	Iterations   int64
	FullPlayouts int64
	Expansions   int64
}
