package searcher

import (
	"mcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// selectToLeaf walks from root to a node with no selectable children,
// repeatedly picking the child with the highest traversal score. Saturated
// children are skipped: they are already fully explored.
func (m *MCTS) selectToLeaf(root *Node, player game.Player, bias float64) *Node {
	node := root
	for {
		child := m.bestChild(node, player, bias)
		if child == nil {
			return node
		}
		node = child
	}
}

func (m *MCTS) bestChild(n *Node, player game.Player, bias float64) *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var best *Node
	bestScore := 0.0
	for _, c := range n.children {
		if m.filterSaturated && c.Saturated() {
			continue
		}
		score := traversalScore(n, c, player, bias)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// expand generates the leaf's children at most once. Racing workers get
// ErrAlreadyExpanded and restart their iteration. The expanded flag is
// written inside the write lock, after the children slice is published, so
// readers observe either "unexpanded, empty slice" or "expanded, full
// slice" - never a torn in-between.
func (m *MCTS) expand(leaf *Node) error {
	leaf.mu.Lock()
	if leaf.stats.expanded.Load() {
		leaf.mu.Unlock()
		return ErrAlreadyExpanded
	}

	if leaf.state.GameOver() {
		leaf.stats.childrenCount.Store(0)
		leaf.stats.expanded.Store(true)
		leaf.mu.Unlock()
		return nil
	}

	moves := leaf.state.LegalMoves(leaf.state.CurrentPlayer())
	if len(moves) == 0 {
		// Port contract violated: non-terminal states must offer a pass
		leaf.stats.childrenCount.Store(0)
		leaf.stats.expanded.Store(true)
		leaf.mu.Unlock()
		return ErrNoLegalMoves
	}

	children := make([]*Node, len(moves))
	for i, move := range moves {
		children[i] = newChild(leaf, move)
	}
	leaf.children = children
	leaf.stats.childrenCount.Store(int64(len(children)))
	leaf.stats.expanded.Store(true)
	leaf.mu.Unlock()

	// Non-critical: lock-free size bookkeeping up to the root
	added := int64(len(children))
	for node := leaf; node != nil; node = node.parent {
		node.stats.treeSize.Add(added)
	}
	return nil
}

// simulate plays uniformly random moves from the given state until game
// over and returns the result. It never mutates any node.
func simulate(state game.State, rng *rand.Rand) game.Result {
	for !state.GameOver() {
		moves := state.LegalMoves(state.CurrentPlayer())
		state = state.Play(moves[rng.Intn(len(moves))])
	}
	result, _ := state.Result()
	return result
}

// backpropSimResult credits one simulation to the node and every ancestor.
func backpropSimResult(n *Node, isWin bool) {
	for node := n; node != nil; node = node.parent {
		node.stats.plays.Add(1)
		if isWin {
			node.stats.wins.Add(1)
		}
	}
}

// backpropSaturation walks upward from a leaf that just became saturated.
// Under each ancestor's crit lock it increments saturatedChildren and folds
// the propagated worst case in by minimum win-ratio. Saturation itself
// stops propagating at the first ancestor that does not newly saturate, but
// the saturated-descendants count continues to the root.
func backpropSaturation(leaf *Node) {
	wcWins, wcPlays := leaf.WorstCase()
	saturating := true
	increment := int64(1)

	for node := leaf.parent; node != nil; node = node.parent {
		if saturating {
			node.stats.crit.Lock()
			node.stats.saturatedChildren.Add(1)
			foldWorstCase(node, wcWins, wcPlays)
			saturating = node.Saturated()
			if saturating {
				wcWins, wcPlays = node.WorstCase()
			}
			node.stats.crit.Unlock()
		}
		node.stats.descendantsSaturated.Add(increment)
		if saturating {
			// This ancestor newly saturated: ancestors above gain one more
			// saturated descendant than it did.
			increment++
		}
	}
}

// foldWorstCase takes the minimum win-ratio of the current worst case and
// the propagated (w,p). Caller holds the node's crit lock.
func foldWorstCase(n *Node, wins, plays int64) {
	curWins := n.stats.worstCaseWins.Load()
	curPlays := n.stats.worstCasePlays.Load()
	// Compare wins/plays < curWins/curPlays by cross-multiplication
	if curPlays == 0 || wins*curPlays < curWins*plays {
		n.stats.worstCaseWins.Store(wins)
		n.stats.worstCasePlays.Store(plays)
	}
}

// backpropTerminalCount records one terminal leaf at every ancestor.
func backpropTerminalCount(leaf *Node, isWin bool) {
	for node := leaf.parent; node != nil; node = node.parent {
		node.stats.terminalCount.Add(1)
		if isWin {
			node.stats.terminalWins.Add(1)
		}
	}
}

// worker is one search goroutine's loop over the shared tree.
func (m *MCTS) worker(root *Node, player game.Player, jitter float64, b budget, rng *rand.Rand) {
	bias := m.exploreBias * (1 + jitter)

	for b.next() && !root.Saturated() {
		leaf := m.selectToLeaf(root, player, bias)
		if err := m.expand(leaf); err != nil {
			if err == ErrAlreadyExpanded {
				m.metrics.AddExpandRace()
			} else {
				log.Warn().Err(err).Msg("consistency violation during expansion")
			}
			continue
		}

		children := leaf.Children()
		if len(children) > 0 {
			simNode := children[rng.Intn(len(children))]
			// Check-lock-recheck: exactly-once first-simulation credit
			// when multiple workers converge on the same fresh child.
			simNode.stats.crit.Lock()
			if simNode.stats.plays.Load() == 0 {
				result := simulate(simNode.state, rng)
				backpropSimResult(simNode, result.IsWinFor(player))
				m.metrics.AddRollout()
			}
			simNode.stats.crit.Unlock()
		} else {
			// Terminal leaf: the playout is empty, the state's own result
			// is final.
			result, _ := leaf.state.Result()
			isWin := result.IsWinFor(player)

			leaf.stats.crit.Lock()
			if leaf.stats.plays.Load() == 0 {
				backpropSimResult(leaf, isWin)
				m.metrics.AddRollout()
			}
			if leaf.stats.endResult == nil {
				leaf.stats.endResult = &result
				if isWin {
					leaf.stats.worstCaseWins.Store(1)
				}
				leaf.stats.worstCasePlays.Store(1)
				leaf.stats.crit.Unlock()
				// A terminal node is immediately saturated
				backpropSaturation(leaf)
				backpropTerminalCount(leaf, isWin)
			} else {
				leaf.stats.crit.Unlock()
			}
		}
	}
}
