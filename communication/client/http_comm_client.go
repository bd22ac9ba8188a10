package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parchis/communication"
	"parchis/experiments/metrics"
	"parchis/game"
)

const requestTimeout = 30 * time.Second

// Client asks a remote server for best plays. It satisfies agent.Agent, so a
// remote searcher can take a seat in a local game.
type Client struct {
	serverURL string
	http      *http.Client
}

// NewClient initializes and returns a new Client.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		http:      &http.Client{Timeout: requestTimeout},
	}
}

// BestPlay posts the table and roll to /bestplay.
func (c *Client) BestPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, error) {
	body, err := json.Marshal(communication.BestPlayRequest{
		State:       state,
		Player:      player,
		Dices:       dices,
		RollsInARow: rollsInARow,
	})
	if err != nil {
		return game.ScoredPlay{}, fmt.Errorf("cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/bestplay", bytes.NewReader(body))
	if err != nil {
		return game.ScoredPlay{}, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return game.ScoredPlay{}, fmt.Errorf("cannot reach %s: %w", c.serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil || failure.Error == "" {
			return game.ScoredPlay{}, fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return game.ScoredPlay{}, fmt.Errorf("server returned status %d: %s", resp.StatusCode, failure.Error)
	}

	var response communication.BestPlayResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return game.ScoredPlay{}, fmt.Errorf("cannot decode response: %w", err)
	}
	return response.ScoredPlay(), nil
}

// FindPlay asks the server for its best play. No search metrics travel back.
func (c *Client) FindPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	play, err := c.BestPlay(ctx, state, player, dices, rollsInARow)
	return play, metrics.SearchMetric{}, err
}
