package metrics

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCollector(t *testing.T) {
	t.Run("counting evaluations from many goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start(8, 0)
		c.SetTurns(100)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddEvaluation()
			}()
		}
		wg.Wait()
		metric := c.Complete()

		require.Equal(t, 8, metric.Goroutines)
		require.Equal(t, 100, metric.Turns)
		require.Equal(t, 100, metric.Evaluations)
		require.False(t, metric.IsWin)
	})

	t.Run("starting again resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 0)
		c.AddEvaluation()
		c.SetWin()
		c.Start(1, 0)

		metric := c.Complete()
		require.Zero(t, metric.Evaluations)
		require.False(t, metric.IsWin)
	})

	t.Run("collecting nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 0)
		c.AddEvaluation()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "strength")
	require.NoError(t, err)

	t.Run("writing agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 0, Kind: RandomAgent, Goroutines: 1, Seed: 3},
			{ID: 1, Kind: HeuristicAgent, Goroutines: 8},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "kind", "goroutines", "depth", "seed"},
			{"0", "random", "1", "0", "3"},
			{"1", "heuristic", "8", "0", "0"},
		}, rows)
	})

	t.Run("writing game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 0, Agent2: 1,
			GameMetric: GameMetric{
				StartingPlayer: 2, Winner: 1,
				StartTime: start, EndTime: start.Add(time.Second),
				Duration: time.Second, TotalTurns: 120,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "0", "1", "2", "1", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "120"}, rows[1])
	})

	t.Run("writing turn records", func(t *testing.T) {
		err := w.WriteTurnRecords([]TurnRecord{{
			Game: 1,
			TurnMetric: TurnMetric{
				Step: 3, Player: 2, Dices: "(5,5)", Moves: 2, Score: math.Inf(1),
				SearchMetric: SearchMetric{Turns: 4, Evaluations: 4},
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "turn_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "3", "2", "(5,5)", "2", "+Inf", "0s", "4", "4", "false"}, rows[1])
	})
}
