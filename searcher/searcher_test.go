package searcher

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"parchis/game"
)

func newTestGame(t *testing.T, first, second game.Pieces) game.Game {
	t.Helper()
	g, err := game.NewGameFromPlayers([game.NumPlayers]game.Player{
		{Number: 1, Pieces: first},
		{Number: 2, Pieces: second},
	})
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Run("searching without goroutines", func(t *testing.T) {
		require.Panics(t, func() { New(0) })
	})

	t.Run("evaluating at the configured depth", func(t *testing.T) {
		s := New(2, WithDepth(1))
		_, _, err := s.BestPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 5, Second: 1}, 1)
		require.ErrorIs(t, err, game.ErrDepthNotImplemented)
	})
}

func TestBestPlay(t *testing.T) {
	t.Run("stopping on a win", func(t *testing.T) {
		g := newTestGame(t, game.Pieces{game.GOAL, game.GOAL, game.GOAL, game.GOAL - 2}, game.NewPlayer(2).Pieces)
		s := New(4, WithMetrics())

		got, metric, err := s.BestPlay(context.Background(), g, 1, game.DicePairRoll{First: 2, Second: 1}, 1)

		require.NoError(t, err)
		require.Equal(t, game.Play{{Player: 1, Origin: game.GOAL - 2, Dest: game.GOAL}}, got.Play)
		require.Zero(t, got.Score)
		require.True(t, metric.IsWin, "Search should report the win")
		require.Zero(t, metric.Evaluations, "No turn should be evaluated after a win")
		require.Equal(t, 2, metric.Turns)
	})

	t.Run("matching the sequential selection", func(t *testing.T) {
		g := newTestGame(t, game.Pieces{5, 20, game.HOME, 103}, game.Pieces{22, 40, 40, game.HOME})
		for _, goroutines := range []int{1, 8} {
			s := New(goroutines)
			for _, roll := range game.AllDiceRolls() {
				want, err := g.BestPlay(1, roll)
				require.NoError(t, err)

				got, _, err := s.BestPlay(context.Background(), g, 1, roll, 1)

				require.NoError(t, err)
				require.Equal(t, want.Play, got.Play, "Roll %v with %d goroutines", roll, goroutines)
				require.InDelta(t, want.Score, got.Score, 1e-9)
			}
		}
	})

	t.Run("keeping the first of equally scored turns", func(t *testing.T) {
		g := newTestGame(t, game.Pieces{5, 20, 30, game.HOME}, game.NewPlayer(2).Pieces)
		roll := game.DicePairRoll{First: 3, Second: 4}
		turns, err := g.AllPossibleStates(1, roll, 1)
		require.NoError(t, err)
		require.Greater(t, len(turns), 1)

		var calls atomic.Int32
		flat := func(state game.Game, player game.PlayerNumber) (float64, error) {
			calls.Add(1)
			return 1, nil
		}
		s := New(8, WithEvaluationFn(flat), WithMetrics())

		got, metric, err := s.BestPlay(context.Background(), g, 1, roll, 1)

		require.NoError(t, err)
		require.Equal(t, turns[0].Movements, got.Play)
		require.Equal(t, len(turns), int(calls.Load()), "Every turn should be evaluated once")
		require.Equal(t, len(turns), metric.Evaluations)
		require.Equal(t, 8, metric.Goroutines)
	})

	t.Run("rolling with no legal move", func(t *testing.T) {
		got, _, err := New(2).BestPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 1, Second: 2}, 1)
		require.NoError(t, err)
		require.Empty(t, got.Play)
		require.True(t, math.IsInf(got.Score, 1))
	})

	t.Run("searching with a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := New(2).BestPlay(ctx, game.NewGame(), 1, game.DicePairRoll{First: 5, Second: 1}, 1)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rolling invalid dice", func(t *testing.T) {
		_, _, err := New(1).BestPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 9, Second: 1}, 1)
		require.ErrorIs(t, err, game.ErrInvalidDice)
	})
}
