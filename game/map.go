package game

import "fmt"

// Position is a cell of the board. HOME and GOAL are shared sentinels; the
// hallway range is reused by every player, so two hallway positions with the
// same number only denote the same cell for the same player.
type Position int

const (
	// Number of common positions. There is no position 0 on the ring, so
	// TotalPositions is itself a valid position.
	TotalPositions = 68

	// Coloured cells before the goal, not counting the goal itself.
	HallwayLength = 7

	// Starts at 101 instead of 100 to number the hallway from 1, as the board does.
	FirstHallway Position = 101

	GOAL         Position = FirstHallway + HallwayLength
	FinalHallway Position = GOAL - 1
	HOME         Position = 0
)

// PlayerNumber identifies one of the two players.
type PlayerNumber int

const NumPlayers = 2

var safePositions = map[Position]struct{}{
	1: {}, 8: {}, 13: {}, 18: {}, 25: {}, 30: {},
	35: {}, 42: {}, 47: {}, 52: {}, 59: {}, 64: {},
}

// StartPosition returns the cell a piece lands on when it leaves home.
func StartPosition(player PlayerNumber) (Position, error) {
	switch player {
	case 1:
		return 1, nil
	case 2:
		return 35, nil
	default:
		return HOME, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
}

// LastPosition returns the common cell just before the player's hallway.
func LastPosition(player PlayerNumber) (Position, error) {
	switch player {
	case 1:
		return 64, nil
	case 2:
		return 30, nil
	default:
		return HOME, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
}

// IsSafePosition reports whether a piece on this cell cannot be eaten.
func IsSafePosition(position Position) bool {
	_, ok := safePositions[position]
	return ok
}

func IsCommonPosition(position Position) bool {
	return position >= 1 && position <= TotalPositions
}

// IsHallwayPosition does not include the goal.
func IsHallwayPosition(position Position) bool {
	return position >= FirstHallway && position <= FinalHallway
}

// IsEatingPosition reports whether a piece landing here may send an enemy home
// without any stacking condition.
func IsEatingPosition(position Position) bool {
	return IsCommonPosition(position) && !IsSafePosition(position)
}

// CorrectPosition wraps a common position that went past TotalPositions back
// onto the ring. Hallway and goal positions are returned untouched.
func CorrectPosition(position Position) Position {
	if position > TotalPositions && position < FirstHallway {
		return position - TotalPositions
	}
	return position
}

// advanceOnRing moves steps cells forward on the common ring.
func advanceOnRing(from Position, steps int) Position {
	return Position((int(from)-1+steps)%TotalPositions + 1)
}

// Distance returns the forward distance around the ring from ori to dest.
func Distance(ori, dest Position) (int, error) {
	if !IsCommonPosition(ori) {
		return 0, fmt.Errorf("%w: %d", ErrNotCommon, ori)
	}
	if !IsCommonPosition(dest) {
		return 0, fmt.Errorf("%w: %d", ErrNotCommon, dest)
	}

	if dest >= ori {
		return int(dest - ori), nil
	}
	return int(dest) + TotalPositions - int(ori), nil
}

// Opponent returns the other player.
func Opponent(player PlayerNumber) PlayerNumber {
	if player == 1 {
		return 2
	}
	return 1
}
