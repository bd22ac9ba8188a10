package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/searcher"
	"parchis/searcher/agent"
)

type mockAgent struct {
	play game.ScoredPlay
	err  error
}

func (m mockAgent) FindPlay(ctx context.Context, state game.Game, player game.PlayerNumber, dices game.DicePairRoll, rollsInARow int) (game.ScoredPlay, metrics.SearchMetric, error) {
	return m.play, metrics.SearchMetric{}, m.err
}

func heuristicAgents() [game.NumPlayers]agent.Agent {
	return [game.NumPlayers]agent.Agent{
		agent.NewEvaluationAgent(searcher.New(2)),
		agent.NewEvaluationAgent(searcher.New(2)),
	}
}

func newTestGame(t *testing.T, first, second game.Pieces) game.Game {
	t.Helper()
	g, err := game.NewGameFromPlayers([game.NumPlayers]game.Player{
		{Number: 1, Pieces: first},
		{Number: 2, Pieces: second},
	})
	require.NoError(t, err)
	return g
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("winning on the first roll", func(t *testing.T) {
		state := newTestGame(t, game.Pieces{game.GOAL, game.GOAL, game.GOAL, game.GOAL - 2}, game.NewPlayer(2).Pieces)
		var updates []Update
		e := NewLocalEngine(heuristicAgents(), NewFixedDice(game.DicePairRoll{First: 2, Second: 1}),
			WithState(state), WithUpdates(func(u Update) { updates = append(updates, u) }))

		winner, gameMetric, turnMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.PlayerNumber(1), winner)
		require.Equal(t, 1, gameMetric.Winner)
		require.Equal(t, 1, gameMetric.TotalTurns)
		require.Len(t, turnMetrics, 1)
		require.Len(t, updates, 1)
		require.Equal(t, game.Play{{Player: 1, Origin: game.GOAL - 2, Dest: game.GOAL}}, updates[0].Play)
		require.Equal(t, e.State.Hash(), updates[0].Hash)
	})

	t.Run("rolling again after a double", func(t *testing.T) {
		state := newTestGame(t, game.Pieces{20, game.GOAL, game.GOAL, game.GOAL}, game.NewPlayer(2).Pieces)
		dice := NewFixedDice(game.DicePairRoll{First: 3, Second: 3}, game.DicePairRoll{First: 1, Second: 2})
		e := NewLocalEngine(heuristicAgents(), dice, WithState(state), WithMaxTurns(3))

		_, _, turnMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		players := make([]int, 0, len(turnMetrics))
		for _, m := range turnMetrics {
			players = append(players, m.Player)
		}
		require.Equal(t, []int{1, 1, 2}, players, "A double should grant another roll")
		first, _ := e.State.Player(1)
		require.Equal(t, game.Position(29), first.Pieces[0])
	})

	t.Run("rolling a third double in a row", func(t *testing.T) {
		state := newTestGame(t, game.Pieces{20, game.GOAL, game.GOAL, game.GOAL}, game.NewPlayer(2).Pieces)
		var updates []Update
		e := NewLocalEngine(heuristicAgents(), NewFixedDice(game.DicePairRoll{First: 2, Second: 2}),
			WithState(state), WithMaxTurns(4), WithUpdates(func(u Update) { updates = append(updates, u) }))

		_, _, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Len(t, updates, 4)
		require.Equal(t, game.Play{{Player: 1, Origin: 28, Dest: game.HOME}}, updates[2].Play,
			"Last touched piece should go home")
		require.Equal(t, game.PlayerNumber(2), updates[3].Player, "Penalty should pass the turn")
		first, _ := e.State.Player(1)
		require.Equal(t, game.Pieces{game.HOME, game.GOAL, game.GOAL, game.GOAL}, first.Pieces)
	})

	t.Run("failing to find a play", func(t *testing.T) {
		failure := errors.New("no search budget")
		agents := [game.NumPlayers]agent.Agent{mockAgent{err: failure}, mockAgent{err: failure}}
		e := NewLocalEngine(agents, NewFixedDice(game.DicePairRoll{First: 1, Second: 2}))

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, failure)
	})

	t.Run("returning an illegal play", func(t *testing.T) {
		illegal := game.ScoredPlay{Play: game.Play{{Player: 1, Origin: 50, Dest: 55}}}
		agents := [game.NumPlayers]agent.Agent{mockAgent{play: illegal}, mockAgent{play: illegal}}
		e := NewLocalEngine(agents, NewFixedDice(game.DicePairRoll{First: 1, Second: 2}))

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrPieceNotFound)
	})

	t.Run("running with a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocalEngine(heuristicAgents(), NewRandomDice(1))

		_, _, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("playing a whole game against the random agent", func(t *testing.T) {
		agents := [game.NumPlayers]agent.Agent{
			agent.NewEvaluationAgent(searcher.New(4)),
			agent.NewRandomAgent(5),
		}
		e := NewLocalEngine(agents, NewRandomDice(11), WithMaxTurns(2000))

		winner, gameMetric, turnMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Len(t, turnMetrics, gameMetric.TotalTurns)
		require.LessOrEqual(t, gameMetric.TotalTurns, 2000)
		if winner != 0 {
			player, _ := e.State.Player(winner)
			require.True(t, player.HasWon())
		}
	})
}

func TestDice(t *testing.T) {
	t.Run("rolling with the same seed", func(t *testing.T) {
		first, second := NewRandomDice(9), NewRandomDice(9)
		for i := 0; i < 50; i++ {
			roll := first.Roll()
			require.NoError(t, roll.Validate())
			require.Equal(t, roll, second.Roll())
		}
	})

	t.Run("replaying fixed rolls", func(t *testing.T) {
		dice := NewFixedDice(game.DicePairRoll{First: 1, Second: 2}, game.DicePairRoll{First: 6, Second: 6})
		require.Equal(t, game.DicePairRoll{First: 1, Second: 2}, dice.Roll())
		require.Equal(t, game.DicePairRoll{First: 6, Second: 6}, dice.Roll())
		require.Equal(t, game.DicePairRoll{First: 1, Second: 2}, dice.Roll())
	})
}
