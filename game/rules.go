package game

// MovementsSequence is an ordered list of advances that must be applied one
// after another during a turn.
type MovementsSequence []int

// MovementsSequences returns the advance orders that have to be explored for a
// roll. If a piece can leave home the five must be used first, either from a
// single die or from the sum of both.
func MovementsSequences(player Player, dices DicePairRoll) []MovementsSequence {
	first, second := int(dices.First), int(dices.Second)

	if player.CanTakeOutPieces() {
		switch {
		case first+second == OutOfHome:
			return []MovementsSequence{{OutOfHome}}
		case first == OutOfHome:
			return []MovementsSequence{{first, second}}
		case second == OutOfHome:
			return []MovementsSequence{{second, first}}
		}
	}

	sequences := []MovementsSequence{{first, second}}
	if !dices.IsDouble() {
		sequences = append(sequences, MovementsSequence{second, first})
	}
	return sequences
}

// isDouble reports whether the pending advances are the two dice of a double.
func (s MovementsSequence) isDouble() bool {
	return len(s) == 2 && s[0] == s[1]
}
