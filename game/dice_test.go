package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiceStatistics(t *testing.T) {
	t.Run("enumerating every roll", func(t *testing.T) {
		rolls := AllDiceRolls()
		require.Len(t, rolls, NumDiceRolls)
		require.Equal(t, DicePairRoll{1, 1}, rolls[0])
		require.Equal(t, DicePairRoll{6, 6}, rolls[NumDiceRolls-1])
		require.InDelta(t, 7.0, AverageDiceRoll, 1e-9)
	})

	t.Run("computing value probabilities", func(t *testing.T) {
		cases := map[int]float64{
			1:  11.0 / 36,
			2:  12.0 / 36,
			5:  15.0 / 36,
			7:  6.0 / 36,
			12: 1.0 / 36,
		}
		for value, want := range cases {
			got, err := DiceValueProbability(value)
			require.NoError(t, err)
			require.InDelta(t, want, got, 1e-9, "Probability of %d", value)
		}
	})

	t.Run("asking for an impossible value", func(t *testing.T) {
		_, err := DiceValueProbability(0)
		require.ErrorIs(t, err, ErrInvalidDice)
		_, err = DiceValueProbability(13)
		require.ErrorIs(t, err, ErrInvalidDice)
	})

	t.Run("validating rolls", func(t *testing.T) {
		require.NoError(t, DicePairRoll{1, 6}.Validate())
		require.ErrorIs(t, DicePairRoll{0, 3}.Validate(), ErrInvalidDice)
		require.ErrorIs(t, DicePairRoll{3, 7}.Validate(), ErrInvalidDice)
		require.True(t, DicePairRoll{4, 4}.IsDouble())
		require.False(t, DicePairRoll{4, 3}.IsDouble())
	})
}
