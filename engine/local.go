package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"parchis/experiments/metrics"
	"parchis/game"
	"parchis/searcher/agent"
)

type Option func(e *LocalEngine)

// LocalEngine plays a game between two agents in process. The live Game is
// only touched by Run.
type LocalEngine struct {
	State    game.Game
	agents   [game.NumPlayers]agent.Agent
	dice     DiceRoller
	starting game.PlayerNumber
	maxTurns int
	updates  func(Update)
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithStartingPlayer(player game.PlayerNumber) Option {
	return func(e *LocalEngine) {
		if player >= 1 && player <= game.NumPlayers {
			e.starting = player
		}
	}
}

func WithState(state game.Game) Option {
	return func(e *LocalEngine) {
		e.State = state
	}
}

// WithUpdates registers a hook called after every applied roll.
func WithUpdates(updates func(Update)) Option {
	return func(e *LocalEngine) {
		if updates != nil {
			e.updates = updates
		}
	}
}

func NewLocalEngine(agents [game.NumPlayers]agent.Agent, dice DiceRoller, options ...Option) *LocalEngine {
	for _, a := range agents {
		if a == nil {
			panic("every player needs an agent")
		}
	}
	if dice == nil {
		panic("need dice to play")
	}

	e := &LocalEngine{ // Default values
		State:    game.NewGame(),
		agents:   agents,
		dice:     dice,
		starting: 1,
		maxTurns: MaxTurns,
		updates:  func(Update) {},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a winner is found. A double grants another
// roll to the same player; the third double in a row is played as a penalty
// and passes the turn.
func (e *LocalEngine) Run(ctx context.Context) (game.PlayerNumber, metrics.GameMetric, []metrics.TurnMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.starting),
		StartTime:      time.Now(),
	}
	var turnMetrics []metrics.TurnMetric

	log.Info().Msgf("player %d is starting", e.starting)

	current := e.starting
	step := 0
	for e.State.Winner() == 0 && step < e.maxTurns {
		rollsInARow := 0
		for {
			if err := ctx.Err(); err != nil {
				return 0, gameMetric, turnMetrics, err
			}
			step++
			rollsInARow++

			dices := e.dice.Roll()
			scored, searchMetric, err := e.agents[current-1].FindPlay(ctx, e.State, current, dices, rollsInARow)
			if err != nil {
				return 0, gameMetric, turnMetrics, fmt.Errorf("cannot find play for player %d: %w", current, err)
			}
			if err := e.State.ApplyPlay(scored.Play); err != nil {
				return 0, gameMetric, turnMetrics, fmt.Errorf("player %d returned an illegal play: %w", current, err)
			}

			turnMetrics = append(turnMetrics, metrics.TurnMetric{
				Step:         step,
				Player:       int(current),
				Dices:        dices.String(),
				Moves:        len(scored.Play),
				Score:        scored.Score,
				SearchMetric: searchMetric,
			})
			e.updates(Update{
				Step:   step,
				Player: current,
				Dices:  dices,
				Play:   scored.Play,
				State:  e.State,
				Hash:   e.State.Hash(),
			})
			log.Debug().Msgf("step %d: player %d rolled %v and played %v", step, current, dices, scored.Play)

			if e.State.Winner() != 0 || !dices.IsDouble() || rollsInARow >= game.MaxDoublesInARow || step >= e.maxTurns {
				break
			}
		}
		current = game.Opponent(current)
	}

	winner := e.State.Winner()
	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalTurns = step

	if winner != 0 {
		log.Info().Msgf("game ended after %d turns with winner: player %d", step, winner)
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", step)
	}
	return winner, gameMetric, turnMetrics, nil
}
