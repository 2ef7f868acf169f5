package engine

import (
	"errors"
	"fmt"

	"mcts/agent"
	"mcts/game"

	"github.com/rs/zerolog/log"
)

// Local runs a two-agent game to completion in process.
type Local struct {
	State  game.State
	agents map[game.Player]agent.Agent
	moves  int
}

func LocalEngine(state game.State, black, white agent.Agent) *Local {
	if black == nil || white == nil {
		panic("need an agent for each player")
	}
	return &Local{
		State: state,
		agents: map[game.Player]agent.Agent{
			game.Black: black,
			game.White: white,
		},
	}
}

// Run executes the game loop until a result is reached. After every applied
// move both agents are notified via ObserveAction so persistent trees can
// follow the game.
func (e *Local) Run() (game.Result, error) {
	log.Info().Stringer("player", e.State.CurrentPlayer()).Msg("game started")

	for !e.State.GameOver() {
		if e.moves >= MaxMoves {
			return 0, fmt.Errorf("no result after %d moves", MaxMoves)
		}

		player := e.State.CurrentPlayer()
		move, err := e.agents[player].PickMove(e.State)
		if err != nil {
			return 0, fmt.Errorf("%v failed to pick a move: %w", player, err)
		}

		next := e.State.Play(move)
		for _, a := range e.agents {
			if err := a.ObserveAction(player, move, next); err != nil {
				return 0, fmt.Errorf("agent out of sync after %v by %v: %w", move, player, err)
			}
		}
		e.State = next
		e.moves++

		log.Debug().
			Stringer("player", player).
			Stringer("move", move).
			Int("move_number", e.moves).
			Msg("move applied")
	}

	result, ok := e.State.Result()
	if !ok {
		return 0, errors.New("game over without a result")
	}
	log.Info().Stringer("result", result).Int("moves", e.moves).Msg("game over")
	return result, nil
}

// Moves returns the number of moves applied so far.
func (e *Local) Moves() int {
	return e.moves
}
