package communication

import (
	"encoding/json"
	"math"

	"parchis/game"
)

// BestPlayRequest asks for the best play of Player with Dices on State.
type BestPlayRequest struct {
	State       game.Game         `json:"state"`
	Player      game.PlayerNumber `json:"player"`
	Dices       game.DicePairRoll `json:"dices"`
	RollsInARow int               `json:"rolls_in_a_row"`
}

// BestPlayResponse carries a scored play. Score is null when no play is
// legal, since JSON has no infinity.
type BestPlayResponse struct {
	Play  game.Play `json:"play"`
	Score *float64  `json:"score"`
}

func NewBestPlayResponse(scored game.ScoredPlay) BestPlayResponse {
	response := BestPlayResponse{Play: scored.Play}
	if response.Play == nil {
		response.Play = game.Play{}
	}
	if !math.IsInf(scored.Score, 0) && !math.IsNaN(scored.Score) {
		score := scored.Score
		response.Score = &score
	}
	return response
}

func (r BestPlayResponse) ScoredPlay() game.ScoredPlay {
	if r.Score == nil {
		return game.ScoredPlay{Play: r.Play, Score: math.Inf(1)}
	}
	return game.ScoredPlay{Play: r.Play, Score: *r.Score}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SelfPlayRequest starts a game played by the server. Agents names the
// agent of each player, "heuristic" (the default) or "random".
type SelfPlayRequest struct {
	Seed           uint64                  `json:"seed"`
	MaxTurns       int                     `json:"max_turns,omitempty"`
	StartingPlayer game.PlayerNumber       `json:"starting_player,omitempty"`
	Agents         [game.NumPlayers]string `json:"agents"`
}

// SelfPlayResult closes a self-play stream.
type SelfPlayResult struct {
	Winner     game.PlayerNumber `json:"winner"`
	TotalTurns int               `json:"total_turns"`
}

// WSMessage is a websocket request.
type WSMessage struct {
	Type    string          `json:"type"`    // "bestplay", "selfplay", "ping"
	ID      string          `json:"id"`      // Echoed back in every response to the request
	Payload json.RawMessage `json:"payload"` // Type specific payload
}

// WSResponse is a websocket response.
type WSResponse struct {
	Type    string `json:"type"` // "result", "update", "error", "pong"
	ID      string `json:"id,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
