// Package experiments benchmarks the search under different worker counts
// and persists per-game and per-move metrics as CSV.
package experiments

import (
	"fmt"
	"time"

	"mcts/agent"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/game/reversi"
	"mcts/searcher"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 100 * time.Millisecond
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Workers: 1, Duration: TimeBudget},
	{ID: 2, Workers: 2, Duration: TimeBudget, Jitter: 0.10},
	{ID: 3, Workers: 4, Duration: TimeBudget, Jitter: 0.10},
	{ID: 4, Workers: 8, Duration: TimeBudget, Jitter: 0.10},
	{ID: 5, Workers: 16, Duration: TimeBudget, Jitter: 0.10},
}

// RunSpeedupExperiment plays Reversi with the same config on both sides for
// increasing worker counts. Throughput shows up in the per-move rollout and
// tree-size columns at a fixed wall-clock budget.
func RunSpeedupExperiment() error {
	matchUps := make([][2]metrics.AgentConfig, 0, len(parallelConfigs))
	for _, config := range parallelConfigs {
		// Same config on both sides for the same playing strength
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return runExperiment("speedup", parallelConfigs, matchUps)
}

// RunStrengthExperiment pairs each config against the sequential baseline.
func RunStrengthExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Workers: 1, Duration: TimeBudget}
	matchUps := make([][2]metrics.AgentConfig, 0, len(parallelConfigs))
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("strength", append([]metrics.AgentConfig{baseline}, parallelConfigs...), matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) error {
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord

	count := 0
	for _, matchUp := range matchUps {
		log.Info().
			Str("experiment", name).
			Int("agent1", matchUp[0].ID).
			Int("agent2", matchUp[1].ID).
			Msg("running match up")

		for i := 0; i < NumGames; i++ {
			count++
			record, moves, err := runGame(count, matchUp)
			if err != nil {
				return fmt.Errorf("game %d failed: %w", count, err)
			}
			gameRecords = append(gameRecords, record)
			moveRecords = append(moveRecords, moves...)
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("experiment records written")
	return nil
}

func runGame(id int, matchUp [2]metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord, error) {
	var moves []metrics.MoveRecord
	black := newRecordedAgent(game.Black, id, matchUp[0], &moves)
	white := newRecordedAgent(game.White, id, matchUp[1], &moves)

	start := time.Now()
	e := engine.LocalEngine(reversi.NewState(), black, white)
	result, err := e.Run()
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record := metrics.GameRecord{
		ID:       id,
		Agent1:   matchUp[0].ID,
		Agent2:   matchUp[1].ID,
		Game:     "reversi",
		Result:   result.String(),
		Moves:    e.Moves(),
		Duration: time.Since(start),
	}
	return record, moves, nil
}

// recordedAgent decorates an MCTSAgent, appending a MoveRecord after every
// pick.
type recordedAgent struct {
	inner  *agent.MCTSAgent
	player game.Player
	game   int
	step   int
	out    *[]metrics.MoveRecord
}

func newRecordedAgent(player game.Player, gameID int, config metrics.AgentConfig, out *[]metrics.MoveRecord) *recordedAgent {
	return &recordedAgent{
		inner:  agent.NewMCTSAgent(player, newMCTS(config)),
		player: player,
		game:   gameID,
		out:    out,
	}
}

func (r *recordedAgent) PickMove(state game.State) (game.Move, error) {
	move, err := r.inner.PickMove(state)
	if err != nil {
		return nil, err
	}
	r.step++
	*r.out = append(*r.out, metrics.MoveRecord{
		Game:         r.game,
		Step:         r.step,
		Player:       r.player.String(),
		SearchMetric: r.inner.LastSearch(),
	})
	return move, nil
}

func (r *recordedAgent) ObserveAction(player game.Player, move game.Move, next game.State) error {
	return r.inner.ObserveAction(player, move, next)
}

func newMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithWorkers(config.Workers),
		searcher.WithMetrics(),
	}
	if config.Rollouts > 0 {
		options = append(options, searcher.WithRollouts(config.Rollouts))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Jitter > 0 {
		options = append(options, searcher.WithJitter(config.Jitter))
	}
	return searcher.NewMCTS(options...)
}
