package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

type SolveMetric struct {
	Nodes         int
	Terminals     int
	Evaluations   int
	BuildDuration time.Duration
	SolveDuration time.Duration
	Value         float64
}

// Collector records the cost of building a game tree and solving it. A single collector
// may be shared by a tree and the solvers built on it.
type Collector interface {
	StartBuild()
	AddNode(terminal bool)
	CompleteBuild()
	StartSolve()
	AddEvaluation()
	CompleteSolve(value float64)
	Complete() SolveMetric
}

type collector struct {
	buildStart    time.Time
	solveStart    time.Time
	buildDuration atomic.Int64
	solveDuration atomic.Int64
	nodes         atomic.Int32
	terminals     atomic.Int32
	evaluations   atomic.Int32
	value         atomic.Uint64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) StartBuild() {
	m.buildStart = time.Now()
}

func (m *collector) AddNode(terminal bool) {
	m.nodes.Add(1)
	if terminal {
		m.terminals.Add(1)
	}
}

func (m *collector) CompleteBuild() {
	m.buildDuration.Store(int64(time.Since(m.buildStart)))
}

func (m *collector) StartSolve() {
	m.solveStart = time.Now()
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) CompleteSolve(value float64) {
	m.solveDuration.Store(int64(time.Since(m.solveStart)))
	m.value.Store(math.Float64bits(value))
}

func (m *collector) Complete() SolveMetric {
	return SolveMetric{
		Nodes:         int(m.nodes.Load()),
		Terminals:     int(m.terminals.Load()),
		Evaluations:   int(m.evaluations.Load()),
		BuildDuration: time.Duration(m.buildDuration.Load()),
		SolveDuration: time.Duration(m.solveDuration.Load()),
		Value:         math.Float64frombits(m.value.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) StartBuild()                 {}
func (m *dummyCollector) AddNode(terminal bool)       {}
func (m *dummyCollector) CompleteBuild()              {}
func (m *dummyCollector) StartSolve()                 {}
func (m *dummyCollector) AddEvaluation()              {}
func (m *dummyCollector) CompleteSolve(value float64) {}
func (m *dummyCollector) Complete() SolveMetric       { return SolveMetric{} }
