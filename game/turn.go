package game

import (
	"errors"

	"github.com/rs/zerolog/log"

	"parchis/utils"
)

// AllPossibleStates enumerates every complete turn player can make with the
// roll. rollsInARow counts the rolls the player has made in a row, this one
// included; a third double in a row is punished instead of played.
func (g Game) AllPossibleStates(player PlayerNumber, dices DicePairRoll, rollsInARow int) ([]Turn, error) {
	if err := dices.Validate(); err != nil {
		return nil, err
	}
	current, err := g.Player(player)
	if err != nil {
		return nil, err
	}

	if rollsInARow >= MaxDoublesInARow && dices.IsDouble() {
		return g.TripleDouble(player)
	}

	var states []Turn
	for _, sequence := range MovementsSequences(current, dices) {
		turns, err := g.AllPossibleStatesFromSequence(player, sequence)
		if err != nil {
			return nil, err
		}
		states = append(states, turns...)
	}

	if dices.IsDouble() {
		filtered := make([]Turn, 0, len(states))
		for _, turn := range states {
			if !g.hasMovedABarrier(turn) {
				filtered = append(filtered, turn)
			}
		}
		// Nothing else can be played, so keep the barrier moves
		if len(filtered) > 0 {
			states = filtered
		}
	}

	log.Debug().
		Int("player", int(player)).
		Str("dices", dices.String()).
		Int("turns", len(states)).
		Msg("enumerated turns")
	return states, nil
}

// AllPossibleStatesFromSequence enumerates the turns that use the advances
// in order. Bonuses earned on the way are played before the remaining
// advances.
func (g Game) AllPossibleStatesFromSequence(player PlayerNumber, advances MovementsSequence) ([]Turn, error) {
	if len(advances) == 0 {
		return nil, nil
	}
	current, err := g.Player(player)
	if err != nil {
		return nil, err
	}

	advance := advances[0]
	var states []Turn
	for _, piece := range g.candidatePieces(current, advances) {
		newGame := g
		dest, err := newGame.MovePiece(player, piece, advance)
		if errors.Is(err, ErrWrongMove) {
			continue
		}
		if err != nil {
			return nil, err
		}

		decisionMovements := Play{{Player: player, Origin: piece, Dest: dest}}
		gotToGoal := dest == GOAL
		eaten, haveEaten := newGame.EatenPlayer(player, dest)
		if haveEaten {
			if err := newGame.PieceEaten(eaten, dest); err != nil {
				return nil, err
			}
			decisionMovements = append(decisionMovements, Move{Player: eaten, Origin: dest, Dest: HOME})
		}

		nextStates, err := newGame.ulteriorMovements(player, advances[1:], gotToGoal, haveEaten)
		if err != nil {
			return nil, err
		}
		if len(nextStates) == 0 {
			states = append(states, Turn{FinalState: newGame, Movements: decisionMovements})
			continue
		}
		for _, next := range nextStates {
			movements := make(Play, 0, len(decisionMovements)+len(next.Movements))
			movements = append(movements, decisionMovements...)
			movements = append(movements, next.Movements...)
			states = append(states, Turn{FinalState: next.FinalState, Movements: movements})
		}
	}
	return states, nil
}

// candidatePieces picks the pieces worth trying with the first advance.
func (g Game) candidatePieces(current Player, advances MovementsSequence) []Position {
	pieces := utils.Unique(current.Pieces[:])
	advance := advances[0]

	// Taking a piece out of home is mandatory
	if advance == OutOfHome && current.CanTakeOutPieces() {
		return []Position{HOME}
	}

	if advances.isDouble() {
		// A double must break a barrier if it can
		var breakable, free []Position
		for _, piece := range pieces {
			if !g.barriers.Has(current.Number, piece) {
				free = append(free, piece)
			} else if current.CanMove(piece, advance, g.barriers) {
				breakable = append(breakable, piece)
			}
		}
		if len(breakable) > 0 {
			return breakable
		}
		if len(free) > 0 {
			return free
		}
	}
	return pieces
}

func (g Game) ulteriorMovements(player PlayerNumber, remaining MovementsSequence, gotToGoal, haveEaten bool) ([]Turn, error) {
	if gotToGoal {
		turns, err := g.AllPossibleStatesFromSequence(player, withBonus(ExtraMovementOnGoal, remaining))
		if err != nil || len(turns) > 0 {
			return turns, err
		}
	}
	if haveEaten {
		turns, err := g.AllPossibleStatesFromSequence(player, withBonus(ExtraMovementOnKill, remaining))
		if err != nil || len(turns) > 0 {
			return turns, err
		}
	}
	return g.AllPossibleStatesFromSequence(player, remaining)
}

func withBonus(bonus int, remaining MovementsSequence) MovementsSequence {
	sequence := make(MovementsSequence, 0, len(remaining)+1)
	sequence = append(sequence, bonus)
	return append(sequence, remaining...)
}

// hasMovedABarrier reports whether the turn opens on a barrier and later
// moves the other piece of it along the same path, rebuilding it further on.
func (g Game) hasMovedABarrier(turn Turn) bool {
	if len(turn.Movements) == 0 {
		return false
	}
	first := turn.Movements[0]
	if !g.barriers.Has(first.Player, first.Origin) {
		return false
	}
	for _, move := range turn.Movements[1:] {
		if move == first {
			return true
		}
	}
	return false
}

// TripleDouble plays the penalty of a third double in a row: the piece the
// player touched last goes home if it is on the common track, otherwise the
// turn is lost.
func (g Game) TripleDouble(player PlayerNumber) ([]Turn, error) {
	last, err := g.LastTouched(player)
	if err != nil {
		return nil, err
	}
	if !IsCommonPosition(last) {
		return []Turn{{FinalState: g, Movements: Play{}}}, nil
	}

	newGame := g
	if err := newGame.PieceEaten(player, last); err != nil {
		return nil, err
	}
	return []Turn{{
		FinalState: newGame,
		Movements:  Play{{Player: player, Origin: last, Dest: HOME}},
	}}, nil
}
