package game

import "math"

// WinningPlay returns the first turn in which player wins, scored with its
// punctuation.
func WinningPlay(player PlayerNumber, turns []Turn) (ScoredPlay, bool) {
	for _, turn := range turns {
		final, err := turn.FinalState.Player(player)
		if err != nil || !final.HasWon() {
			continue
		}
		punctuation, err := final.Punctuation()
		if err != nil {
			continue
		}
		return ScoredPlay{Play: turn.Movements, Score: punctuation}, true
	}
	return ScoredPlay{}, false
}

// NoPlay is returned when the roll cannot be used at all.
func NoPlay() ScoredPlay {
	return ScoredPlay{Play: Play{}, Score: math.Inf(1)}
}

// BestPlay returns the turn with the lowest evaluation for player, or the
// first winning one. It runs on the calling goroutine; searcher.Searcher
// offers the configurable version.
func (g Game) BestPlay(player PlayerNumber, dices DicePairRoll) (ScoredPlay, error) {
	turns, err := g.AllPossibleStates(player, dices, 0)
	if err != nil {
		return ScoredPlay{}, err
	}
	if won, ok := WinningPlay(player, turns); ok {
		return won, nil
	}

	best := NoPlay()
	for _, turn := range turns {
		evaluation, err := turn.FinalState.EvaluateState(player, 0)
		if err != nil {
			return ScoredPlay{}, err
		}
		if evaluation < best.Score {
			best = ScoredPlay{Play: turn.Movements, Score: evaluation}
		}
	}
	return best, nil
}
