package agent

import (
	"errors"
	"fmt"

	"mcts/game"
	"mcts/searcher"

	"github.com/rs/zerolog/log"
)

// ErrTreeOutOfSync is fatal to the agent: the driver reported a move that
// is not among the current root's children, so the persistent tree no
// longer tracks the game.
var ErrTreeOutOfSync = errors.New("observed move not found in search tree")

// MCTSAgent holds the persistent root between moves and recommends moves by
// searching the shared tree.
type MCTSAgent struct {
	player game.Player
	mcts   *searcher.MCTS
	root   *searcher.Node
	last   searcher.SearchMetric
}

func NewMCTSAgent(player game.Player, mcts *searcher.MCTS) *MCTSAgent {
	return &MCTSAgent{player: player, mcts: mcts}
}

// PickMove searches from the current root and returns the recommended move.
// The root carries over statistics accumulated on previous moves when
// ObserveAction has descended the tree.
func (a *MCTSAgent) PickMove(state game.State) (game.Move, error) {
	if a.root == nil {
		a.root = searcher.NewRoot(state)
		a.mcts.NoteTreeReuse(false)
	} else {
		a.mcts.NoteTreeReuse(true)
	}

	a.last = a.mcts.Search(a.root, a.player)

	move, err := searcher.BestAction(a.root, a.player)
	if err != nil {
		return nil, fmt.Errorf("no move for %v: %w", a.player, err)
	}

	log.Debug().
		Stringer("player", a.player).
		Stringer("move", move).
		Int64("plays", a.root.Plays()).
		Int64("wins", a.root.Wins()).
		Bool("saturated", a.root.Saturated()).
		Int64("tree_size", a.root.TreeSize()).
		Int64("terminal_count", a.root.TerminalCount()).
		Int64("terminal_wins", a.root.TerminalWins()).
		Msg("picked move")
	return move, nil
}

// ObserveAction descends the persistent tree to the child matching the
// observed move, preserving accumulated statistics. An unexpanded root has
// nothing to preserve and is replaced by a fresh root for the new state.
func (a *MCTSAgent) ObserveAction(player game.Player, move game.Move, next game.State) error {
	if a.root == nil || !a.root.Expanded() {
		a.root = searcher.NewRoot(next)
		return nil
	}

	child := a.root.ChildByAction(move)
	if child == nil {
		return fmt.Errorf("%w: %v by %v", ErrTreeOutOfSync, move, player)
	}
	child.Detach()
	a.root = child
	return nil
}

// LastSearch returns the metrics of the most recent PickMove search.
func (a *MCTSAgent) LastSearch() searcher.SearchMetric {
	return a.last
}

// Root exposes the persistent root for diagnostics.
func (a *MCTSAgent) Root() *searcher.Node {
	return a.root
}
