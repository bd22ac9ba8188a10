package engine

import (
	"sync"

	"golang.org/x/exp/rand"

	"parchis/game"
)

type DiceRoller interface {
	Roll() game.DicePairRoll
}

type randomDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomDice returns fair dice. The same seed rolls the same sequence.
func NewRandomDice(seed uint64) DiceRoller {
	return &randomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randomDice) Roll() game.DicePairRoll {
	d.mu.Lock()
	defer d.mu.Unlock()
	return game.DicePairRoll{
		First:  game.DiceRoll(d.rng.Intn(game.DiceFaces) + 1),
		Second: game.DiceRoll(d.rng.Intn(game.DiceFaces) + 1),
	}
}

type fixedDice struct {
	rolls []game.DicePairRoll
	next  int
}

// NewFixedDice replays rolls in order, starting over once they run out.
func NewFixedDice(rolls ...game.DicePairRoll) DiceRoller {
	if len(rolls) == 0 {
		panic("Must provide at least one roll")
	}
	return &fixedDice{rolls: rolls}
}

func (d *fixedDice) Roll() game.DicePairRoll {
	roll := d.rolls[d.next%len(d.rolls)]
	d.next++
	return roll
}
