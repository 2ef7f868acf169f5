package metrics

import (
	"time"

	"mcts/searcher"
)

// AgentConfig identifies one search configuration under experiment.
type AgentConfig struct {
	ID       int
	Workers  int
	Duration time.Duration
	Rollouts int
	Jitter   float64
}

// GameRecord summarizes one finished game of an experiment.
type GameRecord struct {
	ID       int
	Agent1   int // AgentConfig.ID playing Black
	Agent2   int // AgentConfig.ID playing White
	Game     string
	Result   string
	Moves    int
	Duration time.Duration
}

// MoveRecord captures the search metrics behind one picked move.
type MoveRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player string
	searcher.SearchMetric
}
