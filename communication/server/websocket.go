package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"parchis/communication"
	"parchis/engine"
	"parchis/experiments"
	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/searcher/agent"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient is one websocket connection. Requests are served one at a time;
// responses go through sendChan to the write loop.
type wsClient struct {
	conn     *websocket.Conn
	server   *Server
	sendChan chan communication.WSResponse
	done     chan struct{} // Closed when the write loop stops
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.clients.Add(1)
	defer s.clients.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &wsClient{conn: conn, server: s, sendChan: make(chan communication.WSResponse, 256), done: make(chan struct{})}
	go client.writePump()
	client.readPump(s.ctx)
}

func (c *wsClient) writePump() {
	defer func() { close(c.done); c.conn.Close() }()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// readPump reads requests until the connection drops or ctx is done, then
// cancels the request being served. Requests are served in order by a single
// goroutine.
func (c *wsClient) readPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	requests := make(chan communication.WSMessage, 16)
	served := make(chan struct{})

	go func() {
		defer close(served)
		for msg := range requests {
			c.handleMessage(ctx, msg)
		}
	}()
	go func() {
		// Unblocks ReadJSON and WriteJSON on shutdown
		<-ctx.Done()
		c.conn.Close()
	}()
	defer func() {
		cancel()
		close(requests)
		<-served
		close(c.sendChan)
	}()

	for {
		var msg communication.WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case requests <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (c *wsClient) handleMessage(ctx context.Context, msg communication.WSMessage) {
	switch msg.Type {
	case "bestplay":
		c.handleBestPlay(ctx, msg)
	case "selfplay":
		c.handleSelfPlay(ctx, msg)
	case "ping":
		c.send(communication.WSResponse{Type: "pong", ID: msg.ID})
	default:
		c.sendError(msg.ID, "unknown message type")
	}
}

// send drops the response once the write loop is gone.
func (c *wsClient) send(response communication.WSResponse) {
	select {
	case c.sendChan <- response:
	case <-c.done:
	}
}

func (c *wsClient) sendError(id, message string) {
	c.send(communication.WSResponse{Type: "error", ID: id, Error: message})
}

func (c *wsClient) handleBestPlay(ctx context.Context, msg communication.WSMessage) {
	var request communication.BestPlayRequest
	if err := json.Unmarshal(msg.Payload, &request); err != nil {
		c.sendError(msg.ID, "invalid payload: "+err.Error())
		return
	}
	response, err := c.server.bestPlay(ctx, request)
	if err != nil {
		c.sendError(msg.ID, err.Error())
		return
	}
	c.send(communication.WSResponse{Type: "result", ID: msg.ID, Payload: response})
}

// handleSelfPlay streams one update per roll, then the result.
func (c *wsClient) handleSelfPlay(ctx context.Context, msg communication.WSMessage) {
	var request communication.SelfPlayRequest
	if err := json.Unmarshal(msg.Payload, &request); err != nil {
		c.sendError(msg.ID, "invalid payload: "+err.Error())
		return
	}

	var agents [game.NumPlayers]agent.Agent
	for i, kind := range request.Agents {
		config := metrics.AgentConfig{
			ID:         i + 1,
			Kind:       metrics.HeuristicAgent,
			Goroutines: c.server.config.Goroutines,
			Depth:      c.server.config.Depth,
			Seed:       request.Seed + uint64(i),
		}
		switch kind {
		case "", metrics.HeuristicAgent:
		case metrics.RandomAgent:
			config.Kind = metrics.RandomAgent
		default:
			c.sendError(msg.ID, "unknown agent "+kind)
			return
		}
		agents[i] = experiments.CreateAgent(config)
	}

	maxTurns := request.MaxTurns
	if maxTurns <= 0 || maxTurns > c.server.config.MaxTurns {
		maxTurns = c.server.config.MaxTurns
	}

	e := engine.NewLocalEngine(agents, c.server.dice(request.Seed),
		engine.WithMaxTurns(maxTurns),
		engine.WithStartingPlayer(request.StartingPlayer),
		engine.WithUpdates(func(u engine.Update) {
			c.send(communication.WSResponse{Type: "update", ID: msg.ID, Payload: u})
		}),
	)
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		c.sendError(msg.ID, err.Error())
		return
	}
	c.send(communication.WSResponse{Type: "result", ID: msg.ID, Payload: communication.SelfPlayResult{
		Winner:     winner,
		TotalTurns: gameMetric.TotalTurns,
	}})
}
