package engine

import "mcts/game"

// MaxMoves caps runaway games; well above the longest legal game of any
// supported board game.
const MaxMoves = 10000

// Update describes one applied move, broadcast to every agent.
type Update struct {
	Player game.Player
	Move   game.Move
	State  game.State
}

type Engine interface {
	// Run starts a game till there's a result or MaxMoves is reached
	Run() (game.Result, error)
}
