package searcher

import (
	"sync/atomic"
	"time"

	"mcts/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers  = 2
	DefaultDuration = 5 * time.Second
)

type Option func(m *MCTS)

// MCTS owns the search configuration and runs the four-phase loop over a
// shared tree with a fixed worker pool per Search call.
type MCTS struct {
	workers         int
	rollouts        int
	duration        time.Duration
	jitter          float64
	exploreBias     float64
	filterSaturated bool
	seed            uint64
	metrics         Collector
}

// WithWorkers sets the number of search goroutines.
func WithWorkers(workers int) Option {
	return func(m *MCTS) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

// WithRollouts bounds the search by a total simulation count shared across
// workers. Takes precedence over the duration budget.
func WithRollouts(rollouts int) Option {
	return func(m *MCTS) {
		if rollouts >= 0 {
			m.rollouts = rollouts
			m.duration = 0
		}
	}
}

// WithDuration bounds the search by wall-clock time.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
			m.rollouts = -1
		}
	}
}

// WithJitter sets the per-worker explore jitter amplitude in [0, 1).
func WithJitter(jitter float64) Option {
	return func(m *MCTS) {
		if jitter >= 0 && jitter < 1 {
			m.jitter = jitter
		}
	}
}

// WithExploreBias overrides the exploration constant.
func WithExploreBias(bias float64) Option {
	return func(m *MCTS) {
		if bias > 0 {
			m.exploreBias = bias
		}
	}
}

// WithFilterSaturated controls whether selection skips saturated children.
func WithFilterSaturated(filter bool) Option {
	return func(m *MCTS) {
		m.filterSaturated = filter
	}
}

// WithSeed fixes the base seed of the per-worker RNGs.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

// WithMetrics enables per-search metrics collection.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		workers:         DefaultWorkers,
		duration:        DefaultDuration,
		rollouts:        -1,
		jitter:          DefaultJitter,
		exploreBias:     DefaultExploreBias,
		filterSaturated: true,
		seed:            uint64(time.Now().UnixNano()),
		metrics:         NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rollouts < 0 && m.duration <= 0 {
		panic("Must specify search rollouts or duration")
	}
	return m
}

// Search runs the fixed budget on the given root for the search player and
// joins all workers before returning. The budget is soft: each worker may
// overshoot by one iteration.
func (m *MCTS) Search(root *Node, player game.Player) SearchMetric {
	m.metrics.Start(m.workers)

	b := m.newBudget()
	offsets := m.jitterOffsets()

	g := new(errgroup.Group)
	for i := 0; i < m.workers; i++ {
		offset := offsets[i]
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		g.Go(func() error {
			m.worker(root, player, offset, b, rng)
			return nil
		})
	}
	g.Wait() // workers never fail; Wait is the join point

	return m.metrics.Complete(root)
}

// NoteTreeReuse records whether the next Search continues on a tree carried
// over from a previous move.
func (m *MCTS) NoteTreeReuse(reused bool) {
	m.metrics.SetTreeReused(reused)
}

// jitterOffsets partitions [-jitter/2, +jitter/2] uniformly across workers.
// A single worker gets no jitter.
func (m *MCTS) jitterOffsets() []float64 {
	offsets := make([]float64, m.workers)
	if m.workers == 1 || m.jitter == 0 {
		return offsets
	}
	for i := range offsets {
		offsets[i] = -m.jitter/2 + m.jitter*float64(i)/float64(m.workers-1)
	}
	return offsets
}

// budget is the shared end condition. Either a deadline or a rollout
// counter shared by all workers, checked at the top of each iteration.
type budget struct {
	deadline  time.Time
	remaining *atomic.Int64
}

func (m *MCTS) newBudget() budget {
	if m.rollouts >= 0 {
		remaining := new(atomic.Int64)
		remaining.Store(int64(m.rollouts))
		return budget{remaining: remaining}
	}
	return budget{deadline: time.Now().Add(m.duration)}
}

func (b budget) next() bool {
	if b.remaining != nil {
		return b.remaining.Add(-1) >= 0
	}
	return time.Now().Before(b.deadline)
}
