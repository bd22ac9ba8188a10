package agent

import (
	"context"

	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/searcher"
)

type evaluationAgent struct {
	selector searcher.PlaySelector
}

// NewEvaluationAgent returns an agent that always plays the best scored turn.
func NewEvaluationAgent(selector searcher.PlaySelector) Agent {
	return evaluationAgent{selector: selector}
}

func (a evaluationAgent) FindPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	return a.selector.BestPlay(ctx, state, player, dices, rollsInARow)
}
