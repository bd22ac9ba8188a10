package searcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"parchis/experiments/metrics"
	"parchis/game"
)

type Option func(s *Searcher)

// Searcher scores every turn reachable with a roll and keeps the lowest one.
// With metrics enabled a Searcher must not run two searches at once.
type Searcher struct {
	goroutines int
	depth      int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(goroutines int, options ...Option) *Searcher {
	if goroutines <= 0 {
		panic("Must search with at least one goroutine")
	}
	s := &Searcher{ // Default values
		goroutines: goroutines,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.evaluate == nil {
		s.evaluate = game.EvaluateAtDepth(s.depth)
	}
	return s
}

// BestPlay returns the first winning turn for player, or else the turn whose
// final state evaluates lowest. Ties keep the turn enumerated first. When no
// turn is legal the play is empty and scored +Inf.
func (s *Searcher) BestPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	s.metrics.Start(s.goroutines, s.depth)

	turns, err := state.AllPossibleStates(player, dices, rollsInARow)
	if err != nil {
		return game.ScoredPlay{}, s.metrics.Complete(), fmt.Errorf("cannot enumerate turns: %w", err)
	}
	s.metrics.SetTurns(len(turns))

	// A win ends the search
	if won, ok := game.WinningPlay(player, turns); ok {
		s.metrics.SetWin()
		return won, s.metrics.Complete(), nil
	}

	scores, err := s.evaluateAll(ctx, turns, player)
	if err != nil {
		return game.ScoredPlay{}, s.metrics.Complete(), fmt.Errorf("cannot evaluate turns: %w", err)
	}

	best := game.NoPlay()
	for i, score := range scores {
		if score < best.Score {
			best = game.ScoredPlay{Play: turns[i].Movements, Score: score}
		}
	}

	log.Debug().
		Int("player", int(player)).
		Str("dices", dices.String()).
		Int("turns", len(turns)).
		Float64("score", best.Score).
		Msg("selected best play")
	return best, s.metrics.Complete(), nil
}

// evaluateAll scores the final state of every turn. Each turn owns its state,
// so evaluations share nothing but the scores slice, one slot per goroutine.
func (s *Searcher) evaluateAll(ctx context.Context, turns []game.Turn, player game.PlayerNumber) ([]float64, error) {
	scores := make([]float64, len(turns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, turn := range turns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, err := s.evaluate(turn.FinalState, player)
			if err != nil {
				return err
			}
			scores[i] = score
			s.metrics.AddEvaluation()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
