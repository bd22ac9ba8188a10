package engine

import (
	"context"

	"parchis/experiments/metrics"
	"parchis/game"
)

const MaxTurns = 10000

type Engine interface {
	// Run plays a game till there's a winner or a max number of rolls is reached
	Run(ctx context.Context) (winner game.PlayerNumber, gameMetric metrics.GameMetric, turnMetrics []metrics.TurnMetric, err error)
}

// Update reports one applied roll.
type Update struct {
	Step   int               `json:"step"`
	Player game.PlayerNumber `json:"player"`
	Dices  game.DicePairRoll `json:"dices"`
	Play   game.Play         `json:"play"`
	State  game.Game         `json:"state"`
	Hash   game.StateHash    `json:"hash"`
}
