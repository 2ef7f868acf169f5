package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists experiment records as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// NewWriterAt writes into the given directory instead of a timestamped one.
func NewWriterAt(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Workers),
			c.Duration.String(),
			strconv.Itoa(c.Rollouts),
			strconv.FormatFloat(c.Jitter, 'f', -1, 64),
		})
	}
	header := []string{"id", "workers", "duration", "rollouts", "jitter"}
	return w.writeFile("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			r.Game,
			r.Result,
			strconv.Itoa(r.Moves),
			r.Duration.String(),
		})
	}
	header := []string{"id", "agent1", "agent2", "game", "result", "moves", "duration"}
	return w.writeFile("games.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Player,
			strconv.Itoa(r.Workers),
			r.Duration.String(),
			strconv.FormatInt(r.Rollouts, 10),
			strconv.FormatInt(r.ExpandRaces, 10),
			strconv.FormatBool(r.TreeReused),
			strconv.FormatInt(r.TreeSize, 10),
			strconv.FormatInt(r.RootPlays, 10),
			strconv.FormatBool(r.RootSaturated),
		})
	}
	header := []string{
		"game", "step", "player", "workers", "duration", "rollouts",
		"expand_races", "tree_reused", "tree_size", "root_plays",
		"root_saturated",
	}
	return w.writeFile("moves.csv", header, rows)
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}

// BaseDir returns the directory records are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}
