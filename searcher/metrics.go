package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one Search call.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int64
	FullPlayouts int64
	Expansions   int64
	TreeReused   bool
}

type MetricsCollector interface {
	Start()
	AddIteration()
	AddFullPlayout()
	AddExpansion()
	SetTreeReused(bool)
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	iterations   atomic.Int64
	fullPlayouts atomic.Int64
	expansions   atomic.Int64
	treeReused   atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.fullPlayouts.Store(0)
	m.expansions.Store(0)
}

func (m *metricsCollector) AddIteration() {
	m.iterations.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *metricsCollector) SetTreeReused(value bool) {
	m.treeReused.Store(value)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
		Expansions:   m.expansions.Load(),
		TreeReused:   m.treeReused.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddIteration()           {}
func (m *noMetricsCollector) AddFullPlayout()         {}
func (m *noMetricsCollector) AddExpansion()           {}
func (m *noMetricsCollector) SetTreeReused(bool)      {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
