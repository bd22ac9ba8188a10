package engine

import (
	"parchis/communication/client"
	"parchis/game"
	"parchis/searcher/agent"
)

// NewRemoteEngine seats the searchers served at urls, one per player, in a
// local game. Dice are rolled locally.
func NewRemoteEngine(urls [game.NumPlayers]string, dice DiceRoller, options ...Option) *LocalEngine {
	var agents [game.NumPlayers]agent.Agent
	for i, url := range urls {
		if url == "" {
			panic("every player needs an agent URL")
		}
		agents[i] = client.NewClient(url)
	}
	return NewLocalEngine(agents, dice, options...)
}
