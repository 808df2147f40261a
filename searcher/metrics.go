package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one FindMove invocation.
type SearchMetric struct {
	StartTime  time.Time
	Duration   time.Duration
	Iterations int64
	Expansions int64
}

// Collector gathers search statistics. Implementations must be safe for
// concurrent use so a parallel iteration loop can share one collector.
type Collector interface {
	// Start opens a collection window, discarding earlier counts.
	Start()
	AddIteration()
	AddExpansion()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	iterations atomic.Int64
	expansions atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.iterations.Store(0)
	c.expansions.Store(0)
}

func (c *collector) AddIteration() {
	c.iterations.Add(1)
}

func (c *collector) AddExpansion() {
	c.expansions.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:  c.startTime,
		Duration:   time.Since(c.startTime),
		Iterations: c.iterations.Load(),
		Expansions: c.expansions.Load(),
	}
}

type nopCollector struct{}

// NewNopCollector returns a collector that discards everything. It is the
// default when no metrics are requested.
func NewNopCollector() Collector {
	return nopCollector{}
}

func (nopCollector) Start()                 {}
func (nopCollector) AddIteration()          {}
func (nopCollector) AddExpansion()          {}
func (nopCollector) Complete() SearchMetric { return SearchMetric{} }
