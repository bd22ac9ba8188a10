package game

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serializable form of a Game. Barriers are not part of it;
// they are rebuilt from the pieces.
type Snapshot struct {
	Players     [NumPlayers]Player `json:"players"`
	LastTouched [NumPlayers]int    `json:"last_touched"`
}

func (g Game) Snapshot() Snapshot {
	return Snapshot{Players: g.Players, LastTouched: g.lastTouched}
}

// FromSnapshot rebuilds a Game, validating players and piece slots.
func FromSnapshot(s Snapshot) (Game, error) {
	g, err := NewGameFromPlayers(s.Players)
	if err != nil {
		return Game{}, err
	}
	for i, slot := range s.LastTouched {
		if slot < 0 || slot >= PiecesPerPlayer {
			return Game{}, fmt.Errorf("%w: player %d touched slot %d", ErrPieceNotFound, i+1, slot)
		}
	}
	g.lastTouched = s.LastTouched
	return g, nil
}

func (g Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*g = restored
	return nil
}
