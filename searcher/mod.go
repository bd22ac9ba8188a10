package searcher

import (
	"context"

	"parchis/experiments/metrics"
	"parchis/game"
)

// PlaySelector picks the play to make with a roll.
type PlaySelector interface {
	BestPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error)
}
