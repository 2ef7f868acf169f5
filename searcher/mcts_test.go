package searcher

import (
	"runtime"
	"testing"
	"time"

	"mcts/game"
	"mcts/game/reversi"
	"mcts/game/tictactoe"

	"github.com/stretchr/testify/require"
)

// verifyInvariants walks the tree and checks the statistics invariants
// that must hold at every quiescent point.
func verifyInvariants(t *testing.T, n *Node) {
	t.Helper()
	require.LessOrEqual(t, n.SaturatedChildren(), n.ChildrenCount(),
		"saturated children cannot exceed children count")
	require.LessOrEqual(t, n.Wins(), n.Plays(), "wins cannot exceed plays")
	if !n.Expanded() {
		require.Empty(t, n.Children(), "children materialize only at expansion")
	}
	for _, c := range n.Children() {
		require.GreaterOrEqual(t, n.Plays(), c.Plays(),
			"a parent is credited every simulation of its children")
		verifyInvariants(t, c)
	}
}

func TestJitterOffsets(t *testing.T) {
	t.Run("single worker gets no jitter", func(t *testing.T) {
		m := NewMCTS(WithWorkers(1), WithJitter(0.5))
		require.Equal(t, []float64{0}, m.jitterOffsets())
	})

	t.Run("offsets partition the amplitude", func(t *testing.T) {
		m := NewMCTS(WithWorkers(3), WithJitter(0.2))
		offsets := m.jitterOffsets()
		require.Len(t, offsets, 3)
		require.InDelta(t, -0.1, offsets[0], 1e-9)
		require.InDelta(t, 0.0, offsets[1], 1e-9)
		require.InDelta(t, 0.1, offsets[2], 1e-9)
	})
}

func TestSearchZeroBudget(t *testing.T) {
	m := NewMCTS(WithRollouts(0))
	root := NewRoot(tictactoe.NewState())

	m.Search(root, game.Black)

	require.False(t, root.Expanded(), "zero budget must leave the root unexpanded")
	require.Equal(t, int64(0), root.Plays())
}

func TestSearchDurationBudget(t *testing.T) {
	m := NewMCTS(WithDuration(100*time.Millisecond), WithWorkers(1), WithMetrics(), WithSeed(9))
	root := NewRoot(tictactoe.NewState())

	metric := m.Search(root, game.Black)

	require.True(t, root.Expanded(), "a time budget must drive actual search work")
	require.Positive(t, root.Plays())
	require.Positive(t, metric.Rollouts)
	verifyInvariants(t, root)
}

func TestSearchGrowsMonotonically(t *testing.T) {
	m := NewMCTS(WithRollouts(50), WithWorkers(2), WithSeed(7))
	root := NewRoot(tictactoe.NewState())

	m.Search(root, game.Black)
	size, plays, saturated := root.TreeSize(), root.Plays(), root.SaturatedChildren()

	m.Search(root, game.Black)
	require.GreaterOrEqual(t, root.TreeSize(), size, "tree size never decreases")
	require.GreaterOrEqual(t, root.Plays(), plays, "plays never decrease")
	require.GreaterOrEqual(t, root.SaturatedChildren(), saturated,
		"saturation is monotone")
	verifyInvariants(t, root)
}

func TestSearchImmediateWin(t *testing.T) {
	for _, workers := range []int{1, 4} {
		m := NewMCTS(WithRollouts(2000), WithWorkers(workers), WithSeed(11))
		root := NewRoot(mustParse(t, "X_X/_O_/__O", game.Black))

		m.Search(root, game.Black)
		move, err := BestAction(root, game.Black)

		require.NoError(t, err)
		require.Equal(t, tictactoe.Move{Row: 0, Col: 1}, move,
			"completing the top row is a proven win regardless of worker count")
		verifyInvariants(t, root)
	}
}

func TestSearchOnlyLegalMove(t *testing.T) {
	for _, workers := range []int{1, 4} {
		m := NewMCTS(WithRollouts(1000), WithWorkers(workers), WithSeed(3))
		root := NewRoot(mustParse(t, "XOX/XOO/OX_", game.Black))

		m.Search(root, game.Black)
		move, err := BestAction(root, game.Black)

		require.NoError(t, err)
		require.Equal(t, tictactoe.Move{Row: 2, Col: 2}, move)
		require.True(t, root.Saturated(), "the single line is fully proven")
		require.Equal(t, int64(1), root.TerminalCount(),
			"exactly one terminal position is reachable")
		verifyInvariants(t, root)
	}
}

func TestSearchSaturationCompleteness(t *testing.T) {
	// Near-terminal position: White to move, two empty cells
	m := NewMCTS(WithRollouts(10000), WithWorkers(2), WithSeed(5))
	root := NewRoot(mustParse(t, "XOX/OOX/X__", game.White))

	m.Search(root, game.White)

	require.True(t, root.Saturated())
	var check func(n *Node)
	check = func(n *Node) {
		require.GreaterOrEqual(t, n.Plays(), int64(1),
			"saturation requires every node to have been visited")
		if _, terminal := n.EndResult(); terminal {
			require.Equal(t, int64(1), n.Plays(),
				"a terminal leaf is credited exactly once")
		}
		for _, c := range n.Children() {
			check(c)
		}
	}
	for _, c := range root.Children() {
		check(c)
	}
	verifyInvariants(t, root)
}

func TestSearchChildrenPlaySum(t *testing.T) {
	m := NewMCTS(WithDuration(200*time.Millisecond), WithWorkers(4))
	root := NewRoot(tictactoe.NewState())

	m.Search(root, game.Black)

	var check func(n *Node)
	check = func(n *Node) {
		children := n.Children()
		if len(children) == 0 {
			return
		}
		var sum int64
		for _, c := range children {
			sum += c.Plays()
		}
		require.LessOrEqual(t, n.Plays()-sum, int64(1),
			"a node is simulated at most once itself; everything else flows through children")
		require.GreaterOrEqual(t, n.Plays()-sum, int64(0))
		for _, c := range children {
			check(c)
		}
	}
	check(root)
	verifyInvariants(t, root)
}

func TestSearchWorstCasePruning(t *testing.T) {
	// Black (X) has exactly one move that does not lose immediately: White
	// threatens the main diagonal, so (2,2) must be blocked.
	m := NewMCTS(WithRollouts(500000), WithWorkers(2), WithSeed(13))
	root := NewRoot(mustParse(t, "O_X/XO_/___", game.Black))

	m.Search(root, game.Black)

	require.True(t, root.Saturated(), "budget must suffice to saturate")
	for _, c := range root.Children() {
		wcWins, wcPlays := c.WorstCase()
		require.Positive(t, wcPlays, "every saturated subtree carries a worst case")
		if c.Action() != (tictactoe.Move{Row: 2, Col: 2}) {
			require.Equal(t, int64(0), wcWins,
				"every non-blocking move enables White's forced diagonal")
		}
	}

	move, err := BestAction(root, game.Black)
	require.NoError(t, err)
	require.Equal(t, tictactoe.Move{Row: 2, Col: 2}, move)
	verifyInvariants(t, root)
}

func TestSearchParallelThroughput(t *testing.T) {
	if testing.Short() {
		t.Skip("wall-clock comparison")
	}
	if runtime.GOMAXPROCS(0) < 2 {
		t.Skip("needs at least two CPUs")
	}
	budget := 300 * time.Millisecond

	single := NewMCTS(WithDuration(budget), WithWorkers(1), WithSeed(1))
	rootSingle := NewRoot(reversi.NewState())
	single.Search(rootSingle, game.Black)

	parallel := NewMCTS(WithDuration(budget), WithWorkers(4), WithSeed(1))
	rootParallel := NewRoot(reversi.NewState())
	parallel.Search(rootParallel, game.Black)

	require.Greater(t, rootParallel.TreeSize(), rootSingle.TreeSize(),
		"more workers must do strictly more work at equal wall-clock budget")
}

func TestSearchMetrics(t *testing.T) {
	m := NewMCTS(WithRollouts(200), WithWorkers(2), WithMetrics(), WithSeed(2))
	root := NewRoot(tictactoe.NewState())

	metric := m.Search(root, game.Black)

	require.Equal(t, 2, metric.Workers)
	require.Positive(t, metric.Rollouts)
	require.Equal(t, root.TreeSize(), metric.TreeSize)
	require.Equal(t, root.Plays(), metric.RootPlays)
}

func TestSearchRolloutsCountPlayouts(t *testing.T) {
	// Iterations that lose an expansion or first-simulation race perform no
	// playout and must not inflate the rollout metric. Every counted rollout
	// credits the root with exactly one play.
	m := NewMCTS(WithRollouts(2000), WithWorkers(4), WithMetrics(), WithSeed(17))
	root := NewRoot(tictactoe.NewState())

	metric := m.Search(root, game.Black)

	require.Equal(t, root.Plays(), metric.Rollouts,
		"rollouts must equal the simulations credited to the tree")
	require.LessOrEqual(t, metric.Rollouts, int64(2000),
		"the budget caps iterations, so playouts can only be fewer")
}
