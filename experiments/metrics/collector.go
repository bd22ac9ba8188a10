package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines  int
	Depth       int
	Duration    time.Duration
	Turns       int // Candidate turns enumerated for the roll
	Evaluations int
	IsWin       bool // Search stopped on a winning turn
}

type TurnMetric struct {
	Step   int
	Player int // Player number
	Dices  string
	Moves  int
	Score  float64
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player number
	Winner         int // Player number, 0 when the turn limit is hit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
}

type Collector interface {
	Start(goroutines, depth int)
	SetTurns(turns int)
	SetWin()
	AddEvaluation()
	Complete() SearchMetric
}

type collector struct {
	goroutines  int
	depth       int
	startTime   time.Time
	turns       atomic.Int32
	evaluations atomic.Int32
	isWin       atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.turns.Store(0)
	m.evaluations.Store(0)
	m.isWin.Store(false)
}

func (m *collector) SetTurns(turns int) {
	m.turns.Store(int32(turns))
}

func (m *collector) SetWin() {
	m.isWin.Store(true)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  m.goroutines,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Turns:       int(m.turns.Load()),
		Evaluations: int(m.evaluations.Load()),
		IsWin:       m.isWin.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) SetTurns(turns int)          {}
func (m *dummyCollector) SetWin()                     {}
func (m *dummyCollector) AddEvaluation()              {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
