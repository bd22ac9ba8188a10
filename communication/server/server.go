package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"parchis/communication"
	"parchis/engine"
	"parchis/game"
	"parchis/meta"
	"parchis/searcher"
)

const shutdownTimeout = 10 * time.Second

type Option func(s *Server)

// WithDice sets the dice of self-play games, built from the requested seed.
func WithDice(dice func(seed uint64) engine.DiceRoller) Option {
	return func(s *Server) {
		if dice != nil {
			s.dice = dice
		}
	}
}

// Server answers best play requests over HTTP and runs self-play games over
// a websocket.
type Server struct {
	config   meta.Config
	selector searcher.PlaySelector
	dice     func(seed uint64) engine.DiceRoller
	server   *http.Server

	// Websocket connections outlive their handler context once hijacked, so
	// they hang off ctx and are waited for on shutdown.
	ctx     context.Context
	cancel  context.CancelFunc
	clients sync.WaitGroup
}

func NewServer(config meta.Config, options ...Option) *Server {
	// No metrics: the searcher is shared by concurrent requests
	selector := searcher.New(config.Goroutines, searcher.WithDepth(config.Depth))
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{ // Default values
		config:   config,
		selector: selector,
		dice:     engine.NewRandomDice,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /bestplay", s.handleBestPlay)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return loggingMiddleware(mux)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("starting server on %s", s.config.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(shutdownCtx)
	s.cancel()
	s.clients.Wait()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, communication.ErrorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBestPlay(w http.ResponseWriter, r *http.Request) {
	var request communication.BestPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}

	response, err := s.bestPlay(r.Context(), request)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) bestPlay(ctx context.Context, request communication.BestPlayRequest) (communication.BestPlayResponse, error) {
	rollsInARow := request.RollsInARow
	if rollsInARow <= 0 {
		rollsInARow = 1
	}
	scored, _, err := s.selector.BestPlay(ctx, request.State, request.Player, request.Dices, rollsInARow)
	if err != nil {
		return communication.BestPlayResponse{}, err
	}
	return communication.NewBestPlayResponse(scored), nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidDice), errors.Is(err, game.ErrInvalidPlayer), errors.Is(err, game.ErrPieceNotFound),
		errors.Is(err, game.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrDepthNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
