package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one Search call over the shared tree.
type SearchMetric struct {
	Workers       int
	Duration      time.Duration
	Rollouts      int64
	ExpandRaces   int64
	TreeReused    bool
	TreeSize      int64
	RootPlays     int64
	RootSaturated bool
}

type Collector interface {
	Start(workers int)
	AddRollout()
	AddExpandRace()
	SetTreeReused(reused bool)
	Complete(root *Node) SearchMetric
}

type collector struct {
	workers     int
	startTime   time.Time
	rollouts    atomic.Int64
	expandRaces atomic.Int64
	treeReused  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(workers int) {
	c.startTime = time.Now()
	c.workers = workers
	c.rollouts.Store(0)
	c.expandRaces.Store(0)
}

func (c *collector) AddRollout() {
	c.rollouts.Add(1)
}

func (c *collector) AddExpandRace() {
	c.expandRaces.Add(1)
}

func (c *collector) SetTreeReused(reused bool) {
	c.treeReused.Store(reused)
}

func (c *collector) Complete(root *Node) SearchMetric {
	return SearchMetric{
		Workers:       c.workers,
		Duration:      time.Since(c.startTime),
		Rollouts:      c.rollouts.Load(),
		ExpandRaces:   c.expandRaces.Load(),
		TreeReused:    c.treeReused.Load(),
		TreeSize:      root.TreeSize(),
		RootPlays:     root.Plays(),
		RootSaturated: root.Saturated(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(workers int)                {}
func (d *dummyCollector) AddRollout()                      {}
func (d *dummyCollector) AddExpandRace()                   {}
func (d *dummyCollector) SetTreeReused(reused bool)        {}
func (d *dummyCollector) Complete(root *Node) SearchMetric { return SearchMetric{} }
