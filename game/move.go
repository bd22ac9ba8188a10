package game

import "fmt"

// Move is a single piece relocation.
type Move struct {
	Player PlayerNumber `json:"player"`
	Origin Position     `json:"origin"`
	Dest   Position     `json:"dest"`
}

func (m Move) String() string {
	return fmt.Sprintf("player %d: %d -> %d", m.Player, m.Origin, m.Dest)
}

// Play holds every move performed during a turn, including the pieces of the
// opponent sent home.
type Play []Move

// ScoredPlay is a play together with the score of the table after it.
type ScoredPlay struct {
	Play  Play    `json:"play"`
	Score float64 `json:"score"`
}

// Turn pairs the state reached with the moves that lead to it. FinalState is an
// owned copy; nothing else references it.
type Turn struct {
	FinalState Game
	Movements  Play
}
