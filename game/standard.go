package game

// Standard Parchís rules.
const (
	// Dice value that takes a piece out of home.
	OutOfHome = 5

	// Extra advance granted for getting a piece to the goal.
	ExtraMovementOnGoal = 10
	// Extra advance granted for sending an enemy piece home.
	ExtraMovementOnKill = 20

	// Consecutive doubles that trigger the penalty instead of a move.
	MaxDoublesInARow = 3

	PiecesPerPlayer = 4

	// Pieces of one player that fit on a cell.
	MaxPiecesOnCell = 2
)
