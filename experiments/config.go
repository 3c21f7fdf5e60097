package experiments

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config drives the benchmark experiments.
type Config struct {
	// Games is the number of Kuhn poker games per experiment.
	Games int `yaml:"games"`
	// Iterations is the per-decision search budget.
	Iterations int `yaml:"iterations"`
	// Goroutines is the number of search workers per decision.
	Goroutines int `yaml:"goroutines"`
	// Seed makes runs reproducible; game i derives its deal and search
	// seeds from Seed+i.
	Seed uint64 `yaml:"seed"`
	// Speedup configures the throughput experiment.
	Speedup SpeedupConfig `yaml:"speedup"`
}

type SpeedupConfig struct {
	Goroutines []int    `yaml:"goroutines"`
	Duration   Duration `yaml:"duration"`
}

// Duration adds YAML parsing of strings like "500ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	err := value.Decode(&raw)
	if err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func DefaultConfig() Config {
	return Config{
		Games:      200,
		Iterations: 2000,
		Goroutines: 4,
		Seed:       1,
		Speedup: SpeedupConfig{
			Goroutines: []int{1, 2, 4, 8, 16},
			Duration:   Duration(500 * time.Millisecond),
		},
	}
}

// LoadConfig reads a YAML config; fields left unset keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}
