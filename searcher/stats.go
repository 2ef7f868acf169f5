package searcher

import (
	"sync"
	"sync/atomic"

	"mcts/game"
)

// stats is the per-node statistics record. The hot counters written by
// backpropagation are lock-free atomics; endResult and the multi-step
// transitions (first simulation credit, terminal finalization, worst-case
// comparison) are guarded by crit.
type stats struct {
	plays atomic.Int64
	wins  atomic.Int64

	// expanded is written inside the children write lock, after the
	// children slice is published, so a reader that observes it true also
	// observes the full slice.
	expanded      atomic.Bool
	childrenCount atomic.Int64

	saturatedChildren    atomic.Int64
	descendantsSaturated atomic.Int64
	treeSize             atomic.Int64
	terminalCount        atomic.Int64
	terminalWins         atomic.Int64

	// Pessimistic wins/plays of the provably worst terminal line below
	// this node, propagated by saturation backprop.
	worstCaseWins  atomic.Int64
	worstCasePlays atomic.Int64

	crit      sync.Mutex
	endResult *game.Result // guarded by crit
}
