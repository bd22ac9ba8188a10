package game

type StateHash uint64

// Evaluate scores a table from the point of view of player. Lower is better
// for that player.
type Evaluate func(state Game, player PlayerNumber) (float64, error)
