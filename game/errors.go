package game

import (
	"errors"
	"fmt"
)

var (
	// ErrPieceNotFound means the referenced position holds none of the
	// player's pieces.
	ErrPieceNotFound = errors.New("no piece to be moved")
	// ErrWrongMove means the advance breaks a board rule.
	ErrWrongMove = errors.New("wrong move")

	ErrInvalidPlayer       = errors.New("got a non existing player")
	ErrInvalidPosition     = errors.New("position off the board")
	ErrInvalidDice         = errors.New("invalid dice")
	ErrNotCommon           = errors.New("not a common position")
	ErrDepthNotImplemented = errors.New("evaluation depth not implemented")
)

// ImpossibleMovementError reports a wrong move at the game level, keeping the
// piece and advance that were asked for.
type ImpossibleMovementError struct {
	Player  PlayerNumber
	Piece   Position
	Advance int
	Err     error
}

func (e *ImpossibleMovementError) Error() string {
	return fmt.Sprintf("player %d: piece at position %d cannot be moved with a %d: %v",
		e.Player, e.Piece, e.Advance, e.Err)
}

func (e *ImpossibleMovementError) Unwrap() error {
	return e.Err
}
