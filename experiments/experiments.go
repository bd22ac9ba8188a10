package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"parchis/engine"
	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/meta"
	"parchis/searcher"
	"parchis/searcher/agent"
)

// Settings shared by every game of an experiment.
type Settings struct {
	Games     int
	MaxTurns  int
	Seed      uint64 // Dice of game i are seeded with Seed+i
	OutputDir string
}

var baseline = metrics.AgentConfig{ID: 0, Kind: metrics.RandomAgent, Goroutines: 1, Seed: 1}

var heuristicConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: metrics.HeuristicAgent, Goroutines: 1},
	{ID: 2, Kind: metrics.HeuristicAgent, Goroutines: 4},
	{ID: 3, Kind: metrics.HeuristicAgent, Goroutines: 8},
}

// RunStrengthExperiment pairs every heuristic agent against the random
// baseline.
func RunStrengthExperiment(ctx context.Context, settings Settings) (*metrics.Writer, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range heuristicConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "strength", append(heuristicConfigs, baseline), matchUps, settings)
}

// RunParallelizationExperiment pairs heuristic agents with themselves to
// compare search durations at the same playing strength.
func RunParallelizationExperiment(ctx context.Context, settings Settings) (*metrics.Writer, error) {
	// Each matchup uses the same config for both players
	// for the same playing strength and similar game length
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range heuristicConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, "parallelization", heuristicConfigs, matchUps, settings)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, settings Settings) (*metrics.Writer, error) {
	games := settings.Games
	if games <= 0 {
		games = meta.GAMES
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	turnRecords := []metrics.TurnRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			// Alternate the starting player
			starting := game.PlayerNumber(i%game.NumPlayers + 1)
			seed := settings.Seed + uint64(count)

			winner, gameMetric, turnMetrics, err := runGame(ctx, config1, config2, starting, seed, settings.MaxTurns)
			if err != nil {
				return nil, fmt.Errorf("cannot run matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, tm := range turnMetrics {
				turnRecords = append(turnRecords, metrics.TurnRecord{
					Game:       count,
					TurnMetric: tm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := storeResults(name, configs, gameRecords, turnRecords, settings.OutputDir)
	if err != nil {
		return nil, err
	}
	return writer, nil
}

func storeResults(name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, turnRecords []metrics.TurnRecord, outputDir string) (*metrics.Writer, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(outputDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return nil, fmt.Errorf("failed to write turn records: %w", err)
	}
	log.Info().Msgf("stored turn records in %s", writer.Dir())
	return writer, nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, config1, config2 metrics.AgentConfig, starting game.PlayerNumber, seed uint64, maxTurns int) (game.PlayerNumber, metrics.GameMetric, []metrics.TurnMetric, error) {
	agents := [game.NumPlayers]agent.Agent{
		CreateAgent(config1),
		CreateAgent(config2),
	}
	e := engine.NewLocalEngine(agents, engine.NewRandomDice(seed),
		engine.WithStartingPlayer(starting),
		engine.WithMaxTurns(maxTurns),
	)
	return e.Run(ctx)
}

// CreateAgent builds the agent described by config.
func CreateAgent(config metrics.AgentConfig) agent.Agent {
	if config.Kind == metrics.RandomAgent {
		return agent.NewRandomAgent(config.Seed)
	}

	goroutines := config.Goroutines
	if goroutines <= 0 {
		goroutines = 1
	}
	return agent.NewEvaluationAgent(searcher.New(goroutines,
		searcher.WithDepth(config.Depth),
		searcher.WithMetrics(),
	))
}
