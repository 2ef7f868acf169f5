package agent

import (
	"mcts/game"
)

// Agent picks moves for one side of a game. The driver must call
// ObserveAction after every applied move (either player's) so stateful
// agents can follow the game.
type Agent interface {
	PickMove(state game.State) (game.Move, error)
	ObserveAction(player game.Player, move game.Move, next game.State) error
}
