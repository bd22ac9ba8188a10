package game

import (
	"fmt"

	"parchis/utils"
)

// Pieces holds the four piece positions of a player. The slot order has no
// meaning in the game; it only identifies a piece between two states.
type Pieces [PiecesPerPlayer]Position

// Player is one side of the table.
type Player struct {
	Number PlayerNumber `json:"number"`
	Pieces Pieces       `json:"pieces"`
}

// NewPlayer returns a player with every piece at home.
func NewPlayer(number PlayerNumber) Player {
	return Player{Number: number, Pieces: Pieces{HOME, HOME, HOME, HOME}}
}

// HasWon reports whether every piece reached the goal.
func (p Player) HasWon() bool {
	return p.CountPiecesIn(GOAL) == PiecesPerPlayer
}

func (p Player) CountPiecesIn(position Position) int {
	return utils.Count(p.Pieces[:], position)
}

func (p Player) index(piece Position) int {
	return utils.FindIndex(p.Pieces[:], piece)
}

// HasPiece reports whether one of the pieces is on position.
func (p Player) HasPiece(position Position) bool {
	return p.index(position) >= 0
}

// CanTakeOutPieces reports whether a piece is at home and the start cell has
// room for it.
func (p Player) CanTakeOutPieces() bool {
	if !p.HasPiece(HOME) {
		return false
	}
	start, err := StartPosition(p.Number)
	if err != nil {
		return false
	}
	return p.CountPiecesIn(start) < MaxPiecesOnCell
}

// MovePiece advances the piece on position piece and returns where it lands.
// The player is left untouched when the move fails.
func (p *Player) MovePiece(piece Position, advance int, barriers Barriers) (Position, error) {
	i := p.index(piece)
	if i < 0 {
		return piece, fmt.Errorf("%w: player %d has no piece at %d", ErrPieceNotFound, p.Number, piece)
	}

	dest, err := p.destination(piece, advance, barriers)
	if err != nil {
		return piece, err
	}
	p.Pieces[i] = dest
	return dest, nil
}

// CanMove reports whether piece can be advanced without touching the player.
func (p Player) CanMove(piece Position, advance int, barriers Barriers) bool {
	_, err := p.MovePiece(piece, advance, barriers)
	return err == nil
}

// Destination computes where a piece of player lands after advancing,
// ignoring barriers and stacking.
func Destination(player PlayerNumber, piece Position, advance int) (Position, error) {
	p := Player{Number: player}
	return p.destination(piece, advance, Barriers{})
}

func (p Player) destination(piece Position, advance int, barriers Barriers) (Position, error) {
	if advance <= 0 {
		return piece, fmt.Errorf("%w: cannot advance %d positions", ErrWrongMove, advance)
	}

	switch ClassOf(piece) {
	case HomeClass:
		// The only move from home is the exit
		if advance != OutOfHome {
			return piece, fmt.Errorf("%w: a piece at home cannot be moved with a %d", ErrWrongMove, advance)
		}
		start, err := StartPosition(p.Number)
		if err != nil {
			return piece, err
		}
		if p.CountPiecesIn(start) >= MaxPiecesOnCell {
			return piece, fmt.Errorf("%w: no room on start position %d", ErrWrongMove, start)
		}
		return start, nil

	case CommonClass:
		last, err := LastPosition(p.Number)
		if err != nil {
			return piece, err
		}
		toLast, err := Distance(piece, last)
		if err != nil {
			return piece, err
		}
		distanceToHallway := 1 + toLast

		if advance < distanceToHallway {
			if p.blocked(piece, advance, barriers) {
				return piece, fmt.Errorf("%w: a barrier blocks the way from %d", ErrWrongMove, piece)
			}
			return advanceOnRing(piece, advance), nil
		}

		if distanceToHallway+HallwayLength < advance {
			return piece, fmt.Errorf("%w: there is not space enough to move %d positions", ErrWrongMove, advance)
		}
		if p.blocked(piece, toLast, barriers) {
			return piece, fmt.Errorf("%w: a barrier blocks the way from %d", ErrWrongMove, piece)
		}
		return FirstHallway + Position(advance-distanceToHallway), nil

	case HallwayClass:
		if int(GOAL-piece) < advance {
			return piece, fmt.Errorf("%w: there is not space enough to move %d positions", ErrWrongMove, advance)
		}
		return piece + Position(advance), nil

	case GoalClass:
		return piece, fmt.Errorf("%w: piece on goal cannot be moved", ErrWrongMove)

	default:
		return piece, fmt.Errorf("%w: %d is not a board position", ErrWrongMove, piece)
	}
}

// blocked reports whether an opponent barrier stands on any of the steps
// common cells after from. Barriers stop crossing, not only landing.
func (p Player) blocked(from Position, steps int, barriers Barriers) bool {
	opponent := Opponent(p.Number)
	for i := 1; i <= steps; i++ {
		if barriers.Has(opponent, advanceOnRing(from, i)) {
			return true
		}
	}
	return false
}

// pieceEaten sends the piece at position back home.
func (p *Player) pieceEaten(position Position) error {
	i := p.index(position)
	if i < 0 {
		return fmt.Errorf("%w: player %d has no piece at %d to be eaten", ErrPieceNotFound, p.Number, position)
	}
	p.Pieces[i] = HOME
	return nil
}
