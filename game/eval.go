package game

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Punctuation estimates how many rolls the player still needs to bring every
// piece to the goal. A winner scores 0.
func (p Player) Punctuation() (float64, error) {
	start, err := StartPosition(p.Number)
	if err != nil {
		return 0, err
	}
	last, err := LastPosition(p.Number)
	if err != nil {
		return 0, err
	}
	exitProbability, err := DiceValueProbability(OutOfHome)
	if err != nil {
		return 0, err
	}

	terms := make([]float64, 0, 3*PiecesPerPlayer)
	for _, piece := range p.Pieces {
		if piece == GOAL {
			continue
		}

		from := piece
		if piece == HOME {
			// Waiting for a five, then walking from the start position
			terms = append(terms, AverageDiceRoll/exitProbability)
			from = start
		}

		distanceToGoal := int(GOAL - piece)
		if piece < FirstHallway {
			distance, err := Distance(from, last)
			if err != nil {
				return 0, fmt.Errorf("cannot score piece at %d: %w", piece, err)
			}
			terms = append(terms, float64(distance))
			distanceToGoal = HallwayLength
		}

		// Rolls needed to hit the exact value that finishes the piece
		probability, err := DiceValueProbability(distanceToGoal)
		if err != nil {
			return 0, fmt.Errorf("cannot score piece at %d: %w", piece, err)
		}
		terms = append(terms, AverageDiceRoll/probability)
	}

	return floats.Sum(terms), nil
}

// NonRecursiveEvaluateState scores the table for player without looking
// ahead: its own punctuation minus the opponent's. Lower is better.
func (g Game) NonRecursiveEvaluateState(player PlayerNumber) (float64, error) {
	if _, err := g.player(player); err != nil {
		return 0, err
	}

	var value float64
	for _, p := range g.Players {
		punctuation, err := p.Punctuation()
		if err != nil {
			return 0, err
		}
		if p.Number == player {
			value += punctuation
		} else {
			value -= punctuation
		}
	}
	return value, nil
}

// EvaluateState scores the table for player looking depth plies ahead. Only
// depth 0 is available.
func (g Game) EvaluateState(player PlayerNumber, depth int) (float64, error) {
	if depth == 0 {
		return g.NonRecursiveEvaluateState(player)
	}
	return 0, fmt.Errorf("%w: depth %d", ErrDepthNotImplemented, depth)
}

// EvaluateAtDepth adapts EvaluateState to the Evaluate signature.
func EvaluateAtDepth(depth int) Evaluate {
	return func(state Game, player PlayerNumber) (float64, error) {
		return state.EvaluateState(player, depth)
	}
}
