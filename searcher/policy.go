package searcher

import (
	"mcts/game"
)

// BestAction ranks the root's children and returns the recommended move:
//
//  1. a child whose end result is a proven win for the search player,
//  2. if all children are saturated, the max wins/plays ratio,
//  3. otherwise the max visit count (Robust Child).
//
// Ties break by first occurrence in the children list.
func BestAction(root *Node, player game.Player) (game.Move, error) {
	children := root.Children()
	if len(children) == 0 {
		return nil, ErrNoLegalMoves
	}

	for _, c := range children {
		if result, ok := c.EndResult(); ok && result.IsWinFor(player) {
			return c.action, nil
		}
	}

	allSaturated := true
	for _, c := range children {
		if !c.Saturated() {
			allSaturated = false
			break
		}
	}

	best := children[0]
	if allSaturated {
		bestRatio := winRatio(best)
		for _, c := range children[1:] {
			if r := winRatio(c); r > bestRatio {
				best, bestRatio = c, r
			}
		}
	} else {
		for _, c := range children[1:] {
			if c.Plays() > best.Plays() {
				best = c
			}
		}
	}
	return best.action, nil
}

func winRatio(n *Node) float64 {
	plays := n.Plays()
	if plays == 0 {
		return 0
	}
	return float64(n.Wins()) / float64(plays)
}
