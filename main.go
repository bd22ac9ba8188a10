package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"parchis/communication/server"
	"parchis/engine"
	"parchis/experiments"
	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/meta"
	"parchis/searcher"
	"parchis/searcher/agent"
)

func main() {
	mode := flag.String("mode", "bestplay", "One of bestplay, selfplay, experiment, parallelization or serve")
	configPath := flag.String("config", "", "Path to a YAML config file")
	logLevel := flag.String("log-level", "", "Overrides the log level of the config")
	seed := flag.Uint64("seed", 0, "Overrides the seed of the config")
	profiling := flag.String("profile", "", "Writes a cpu or mem profile to the current directory")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	config, err := loadConfig(*configPath, *logLevel, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	level, _ := zerolog.ParseLevel(config.LogLevel)
	zerolog.SetGlobalLevel(level)

	switch *profiling {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal().Str("profile", *profiling).Msg("unknown profile kind")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "bestplay":
		err = runBestPlay(ctx, config)
	case "selfplay":
		err = runSelfPlay(ctx, config)
	case "experiment", "parallelization":
		err = runExperiment(ctx, config, *mode)
	case "serve":
		err = server.NewServer(config).ListenAndServe(ctx)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func loadConfig(path, logLevel string, seed uint64) (meta.Config, error) {
	config := meta.Default()
	if path != "" {
		loaded, err := meta.Load(path)
		if err != nil {
			return meta.Config{}, err
		}
		config = loaded
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if seed != 0 {
		config.Seed = seed
	}
	return config, config.Validate()
}

// runBestPlay searches the best play of a fixed table and prints its moves.
func runBestPlay(ctx context.Context, config meta.Config) error {
	state, err := game.NewGameFromPlayers([game.NumPlayers]game.Player{
		{Number: 1, Pieces: game.Pieces{1, 34, 11, 7}},
		{Number: 2, Pieces: game.Pieces{game.GOAL - 3, 47, 35, 41}},
	})
	if err != nil {
		return err
	}
	dices := game.DicePairRoll{First: 1, Second: 2}

	s := searcher.New(config.Goroutines, searcher.WithDepth(config.Depth), searcher.WithMetrics())
	best, searchMetric, err := s.BestPlay(ctx, state, 1, dices, 1)
	if err != nil {
		return err
	}

	fmt.Printf("Best play for player 1 with %v (score %.2f):\n", dices, best.Score)
	for _, move := range best.Play {
		fmt.Println(move)
	}
	log.Info().
		Int("turns", searchMetric.Turns).
		Int("evaluations", searchMetric.Evaluations).
		Dur("duration", searchMetric.Duration).
		Msg("search done")
	return nil
}

// runSelfPlay plays the heuristic agent against the random one.
func runSelfPlay(ctx context.Context, config meta.Config) error {
	agents := [game.NumPlayers]agent.Agent{
		experiments.CreateAgent(metrics.AgentConfig{ID: 1, Kind: metrics.HeuristicAgent, Goroutines: config.Goroutines, Depth: config.Depth}),
		experiments.CreateAgent(metrics.AgentConfig{ID: 2, Kind: metrics.RandomAgent, Seed: config.Seed}),
	}
	e := engine.NewLocalEngine(agents, engine.NewRandomDice(config.Seed), engine.WithMaxTurns(config.MaxTurns))

	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Game over after %d turns! Winner: player %d\n", gameMetric.TotalTurns, winner)
	return nil
}

func runExperiment(ctx context.Context, config meta.Config, mode string) error {
	settings := experiments.Settings{
		Games:     config.Games,
		MaxTurns:  config.MaxTurns,
		Seed:      config.Seed,
		OutputDir: config.OutputDir,
	}

	run := experiments.RunStrengthExperiment
	if mode == "parallelization" {
		run = experiments.RunParallelizationExperiment
	}
	writer, err := run(ctx, settings)
	if err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", writer.Dir())
	return nil
}
