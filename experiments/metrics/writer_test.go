package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcts/searcher"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "should open %s", path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "should parse %s", path)
	return rows
}

func TestWriteAgentConfigs(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriterAt(dir)
	require.NoError(t, err, "should create writer")
	require.Equal(t, dir, writer.BaseDir(), "should write into the given directory")

	configs := []AgentConfig{
		{ID: 0, Workers: 1, Duration: 100 * time.Millisecond, Jitter: 0.1},
		{ID: 1, Workers: 4, Rollouts: 5000, Jitter: 0.1},
	}
	require.NoError(t, writer.WriteAgentConfigs(configs), "should write configs")

	rows := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, rows, 3, "should have header plus one row per config")
	require.Equal(t, []string{"id", "workers", "duration", "rollouts", "jitter"}, rows[0], "should write header")
	require.Equal(t, []string{"0", "1", "100ms", "0", "0.1"}, rows[1], "should serialize duration config")
	require.Equal(t, []string{"1", "4", "0s", "5000", "0.1"}, rows[2], "should serialize rollout config")
}

func TestWriteGameRecords(t *testing.T) {
	writer, err := NewWriterAt(t.TempDir())
	require.NoError(t, err, "should create writer")

	games := []GameRecord{
		{ID: 0, Agent1: 0, Agent2: 1, Game: "reversi", Result: "black wins", Moves: 60, Duration: 3 * time.Second},
	}
	require.NoError(t, writer.WriteGameRecords(games), "should write games")

	rows := readCSV(t, filepath.Join(writer.BaseDir(), "games.csv"))
	require.Len(t, rows, 2, "should have header plus one row")
	require.Equal(t, []string{"0", "0", "1", "reversi", "black wins", "60", "3s"}, rows[1], "should serialize game record")
}

func TestWriteMoveRecords(t *testing.T) {
	writer, err := NewWriterAt(t.TempDir())
	require.NoError(t, err, "should create writer")

	moves := []MoveRecord{
		{
			Game:   0,
			Step:   1,
			Player: "black",
			SearchMetric: searcher.SearchMetric{
				Workers:       4,
				Duration:      50 * time.Millisecond,
				Rollouts:      1234,
				ExpandRaces:   2,
				TreeReused:    true,
				TreeSize:      321,
				RootPlays:     1234,
				RootSaturated: false,
			},
		},
	}
	require.NoError(t, writer.WriteMoveRecords(moves), "should write moves")

	rows := readCSV(t, filepath.Join(writer.BaseDir(), "moves.csv"))
	require.Len(t, rows, 2, "should have header plus one row")
	require.Equal(t, []string{
		"0", "1", "black", "4", "50ms", "1234", "2", "true", "321", "1234", "false",
	}, rows[1], "should serialize move record with search metrics")
}
