package searcher

import (
	"sync"

	"mcts/game"
)

// Node is one state of the shared search tree, reached by a specific
// sequence of moves from the root. All workers mutate node statistics
// concurrently; the children slice is populated exactly once by expansion
// under the write lock.
type Node struct {
	state  game.State
	action game.Move // move that produced state; nil for the root
	parent *Node

	mu       sync.RWMutex
	children []*Node

	stats stats
}

// NewRoot creates a fresh unexpanded root for the given state.
func NewRoot(state game.State) *Node {
	return &Node{state: state}
}

func newChild(parent *Node, action game.Move) *Node {
	return &Node{
		state:  parent.state.Play(action),
		action: action,
		parent: parent,
	}
}

func (n *Node) State() game.State { return n.state }

// Action returns the move that produced this node, nil for the root.
func (n *Node) Action() game.Move { return n.action }

// Children returns a snapshot of the children slice.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]*Node(nil), n.children...)
}

// ChildByAction returns the child produced by the given move, or nil.
func (n *Node) ChildByAction(m game.Move) *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, c := range n.children {
		if c.action == m {
			return c
		}
	}
	return nil
}

// Detach severs the parent back-reference, making this node a root. Must
// only be called between searches.
func (n *Node) Detach() {
	n.parent = nil
}

func (n *Node) Plays() int64 { return n.stats.plays.Load() }
func (n *Node) Wins() int64  { return n.stats.wins.Load() }

func (n *Node) Expanded() bool { return n.stats.expanded.Load() }

// ChildrenCount is the number of legal children, set once at expansion.
func (n *Node) ChildrenCount() int64 { return n.stats.childrenCount.Load() }

func (n *Node) SaturatedChildren() int64    { return n.stats.saturatedChildren.Load() }
func (n *Node) DescendantsSaturated() int64 { return n.stats.descendantsSaturated.Load() }
func (n *Node) TreeSize() int64             { return n.stats.treeSize.Load() }
func (n *Node) TerminalCount() int64        { return n.stats.terminalCount.Load() }
func (n *Node) TerminalWins() int64         { return n.stats.terminalWins.Load() }

// Saturated reports whether every terminal outcome below this node has
// been proven. Monotone: once true, stays true.
func (n *Node) Saturated() bool {
	return n.stats.expanded.Load() &&
		n.stats.saturatedChildren.Load() >= n.stats.childrenCount.Load()
}

// WorstCase returns the pessimistic wins/plays propagated from the proven
// worst child. Plays is zero until any child subtree saturates.
func (n *Node) WorstCase() (wins, plays int64) {
	return n.stats.worstCaseWins.Load(), n.stats.worstCasePlays.Load()
}

// EndResult returns the final game result if this node's state is terminal
// and has been visited.
func (n *Node) EndResult() (game.Result, bool) {
	n.stats.crit.Lock()
	defer n.stats.crit.Unlock()
	if n.stats.endResult == nil {
		return 0, false
	}
	return *n.stats.endResult, true
}
