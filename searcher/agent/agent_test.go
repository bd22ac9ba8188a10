package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/searcher"
)

type mockSelector struct {
	play  game.ScoredPlay
	calls int
}

func (m *mockSelector) BestPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	m.calls++
	return m.play, metrics.SearchMetric{Turns: 1}, nil
}

func TestEvaluationAgent(t *testing.T) {
	t.Run("delegating to the selector", func(t *testing.T) {
		want := game.ScoredPlay{Play: game.Play{{Player: 1, Origin: game.HOME, Dest: 1}}, Score: -3}
		selector := &mockSelector{play: want}
		a := NewEvaluationAgent(selector)

		got, metric, err := a.FindPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 5, Second: 5}, 1)

		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, 1, metric.Turns)
		require.Equal(t, 1, selector.calls)
	})

	t.Run("playing with a searcher", func(t *testing.T) {
		a := NewEvaluationAgent(searcher.New(2))
		got, _, err := a.FindPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 4, Second: 1}, 1)
		require.NoError(t, err)
		require.Equal(t, game.Play{{Player: 1, Origin: game.HOME, Dest: 1}}, got.Play, "Sum of five should take a piece out")
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("playing legal turns", func(t *testing.T) {
		state := game.NewGame()
		a := NewRandomAgent(7)
		roll := game.DicePairRoll{First: 5, Second: 3}
		turns, err := state.AllPossibleStates(1, roll, 1)
		require.NoError(t, err)
		legal := make([]game.Play, 0, len(turns))
		for _, turn := range turns {
			legal = append(legal, turn.Movements)
		}

		for i := 0; i < 20; i++ {
			got, metric, err := a.FindPlay(context.Background(), state, 1, roll, 1)
			require.NoError(t, err)
			require.Contains(t, legal, got.Play)
			require.Equal(t, len(turns), metric.Turns)
		}
	})

	t.Run("replaying with the same seed", func(t *testing.T) {
		state, err := game.NewGameFromPlayers([game.NumPlayers]game.Player{
			{Number: 1, Pieces: game.Pieces{5, 20, 30, 40}},
			game.NewPlayer(2),
		})
		require.NoError(t, err)
		first, second := NewRandomAgent(42), NewRandomAgent(42)
		for _, roll := range game.AllDiceRolls() {
			a, _, err := first.FindPlay(context.Background(), state, 1, roll, 1)
			require.NoError(t, err)
			b, _, err := second.FindPlay(context.Background(), state, 1, roll, 1)
			require.NoError(t, err)
			require.Equal(t, a, b, "Same seed should pick the same play for %v", roll)
		}
	})

	t.Run("rolling with no legal move", func(t *testing.T) {
		got, _, err := NewRandomAgent(1).FindPlay(context.Background(), game.NewGame(), 1, game.DicePairRoll{First: 1, Second: 2}, 1)
		require.NoError(t, err)
		require.Empty(t, got.Play)
	})
}
