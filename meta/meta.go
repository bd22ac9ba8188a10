// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GO_ROUTINES defines the number of goroutines evaluating turns.
const GO_ROUTINES = 8

// DEPTH defines the plies looked ahead by the evaluation.
const DEPTH = 0

// MAX_TURNS defines the rolls after which a game is stopped.
const MAX_TURNS = 2000

// GAMES defines the games played per match up.
const GAMES = 30

const ADDR = ":8080"

const OUTPUT_DIR = "experiments/results"

// Config holds the settings of every mode of the binary.
type Config struct {
	Goroutines int    `yaml:"goroutines"`
	Depth      int    `yaml:"depth"`
	MaxTurns   int    `yaml:"max_turns"`
	Games      int    `yaml:"games"`
	Seed       uint64 `yaml:"seed"`
	Addr       string `yaml:"addr"`
	OutputDir  string `yaml:"output_dir"`
	LogLevel   string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Goroutines: GO_ROUTINES,
		Depth:      DEPTH,
		MaxTurns:   MAX_TURNS,
		Games:      GAMES,
		Seed:       1,
		Addr:       ADDR,
		OutputDir:  OUTPUT_DIR,
		LogLevel:   zerolog.InfoLevel.String(),
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Goroutines <= 0 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth cannot be negative, got %d", c.Depth)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
