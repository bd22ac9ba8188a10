package agent

import (
	"context"
	"sync"

	"golang.org/x/exp/rand"

	"parchis/experiments/metrics"
	"parchis/game"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays any legal turn with the same
// probability. It is the baseline the heuristic is measured against.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	turns, err := state.AllPossibleStates(player, dices, rollsInARow)
	if err != nil {
		return game.ScoredPlay{}, metrics.SearchMetric{}, err
	}
	metric := metrics.SearchMetric{Goroutines: 1, Turns: len(turns)}
	if len(turns) == 0 {
		return game.NoPlay(), metric, nil
	}

	turn := turns[a.sample(len(turns))]
	score, err := turn.FinalState.NonRecursiveEvaluateState(player)
	if err != nil {
		return game.ScoredPlay{}, metric, err
	}
	metric.Evaluations = 1
	return game.ScoredPlay{Play: turn.Movements, Score: score}, metric, nil
}

func (a *randomAgent) sample(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(n)
}
