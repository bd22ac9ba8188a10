package game

import "fmt"

// DiceRoll is the value shown by one die.
type DiceRoll int

// DicePairRoll is the result of rolling both dice.
type DicePairRoll struct {
	First  DiceRoll `json:"first"`
	Second DiceRoll `json:"second"`
}

const (
	DiceFaces     = 6
	NumDiceRolls  = DiceFaces * DiceFaces
	NumDiceValues = 2 * DiceFaces
	minDiceRoll   = 1
	maxDiceRoll   = DiceFaces
)

// AverageDiceRoll is the expected sum of a pair roll.
var AverageDiceRoll = averageDiceRoll()

// diceValueProbability[v-1] is the probability of seeing v, either on one of
// the dice or as their sum.
var diceValueProbability = loadDiceValuesProbability()

// AllDiceRolls lists the 36 ordered pair rolls.
func AllDiceRolls() []DicePairRoll {
	rolls := make([]DicePairRoll, 0, NumDiceRolls)
	for first := DiceRoll(1); first <= DiceFaces; first++ {
		for second := DiceRoll(1); second <= DiceFaces; second++ {
			rolls = append(rolls, DicePairRoll{First: first, Second: second})
		}
	}
	return rolls
}

func averageDiceRoll() float64 {
	sum := 0
	for _, roll := range AllDiceRolls() {
		sum += int(roll.First + roll.Second)
	}
	return float64(sum) / NumDiceRolls
}

func loadDiceValuesProbability() [NumDiceValues]float64 {
	var timesSeen [NumDiceValues]int
	for _, roll := range AllDiceRolls() {
		for value := DiceRoll(1); value <= NumDiceValues; value++ {
			inDice := value == roll.First || value == roll.Second
			inSum := value == roll.First+roll.Second
			if inDice || inSum {
				timesSeen[value-1]++
			}
		}
	}

	var probability [NumDiceValues]float64
	for i, seen := range timesSeen {
		probability[i] = float64(seen) / NumDiceRolls
	}
	return probability
}

// DiceValueProbability returns the chance of being able to advance exactly
// value positions with a single roll.
func DiceValueProbability(value int) (float64, error) {
	if value < 1 || value > NumDiceValues {
		return 0, fmt.Errorf("%w: impossible dice value %d", ErrInvalidDice, value)
	}
	return diceValueProbability[value-1], nil
}

// IsDouble reports whether both dice show the same face.
func (r DicePairRoll) IsDouble() bool {
	return r.First == r.Second
}

// Validate checks both dice are in range.
func (r DicePairRoll) Validate() error {
	for _, d := range []DiceRoll{r.First, r.Second} {
		if d < minDiceRoll || d > maxDiceRoll {
			return fmt.Errorf("%w: %d is not a die face", ErrInvalidDice, d)
		}
	}
	return nil
}

func (r DicePairRoll) String() string {
	return fmt.Sprintf("(%d,%d)", r.First, r.Second)
}
