package agent

import (
	"context"

	"parchis/experiments/metrics"
	"parchis/game"
)

type Agent interface {
	// FindPlay returns the play for the roll and performance metrics (if collected) from the search
	FindPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error)
}
