package agent

import (
	"mcts/game"
	"mcts/searcher"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal move. Useful as a baseline
// opponent.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) PickMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves(state.CurrentPlayer())
	if len(moves) == 0 {
		return nil, searcher.ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], nil
}

func (a *RandomAgent) ObserveAction(player game.Player, move game.Move, next game.State) error {
	return nil
}
