package meter

import (
	"sync/atomic"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// IncrementCount adds one to metric.
func (m *Meter) IncrementCount(metric string) {
	m.AddCount(metric, 1)
}

// AddCount adds delta to metric, creating it on first use.
func (m *Meter) AddCount(metric string, delta uint64) {
	m.mu.Lock()
	counter, exists := m.counts[metric]
	if !exists {
		counter = new(uint64)
		m.counts[metric] = counter
		m.metricNames = append(m.metricNames, metric)
	}
	m.mu.Unlock()

	atomic.AddUint64(counter, delta)
	m.events.WithLabelValues(metric).Add(float64(delta))
}

// RecordStage counts a stage outcome. Latency is only observed for successes.
func (m *Meter) RecordStage(stage types.Stage, kind types.ErrorKind, seconds float64) {
	label := string(kind)
	if label == "" {
		label = "ok"
		m.stageLatency.WithLabelValues(string(stage)).Observe(seconds)
	}
	m.stages.WithLabelValues(string(stage), label).Inc()
}

// RecordAnalysis observes the latency of one analysis call.
func (m *Meter) RecordAnalysis(seconds float64) {
	m.analysisLatency.Observe(seconds)
}
