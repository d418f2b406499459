package meter

import (
	"sync/atomic"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// GetComponentMetadata returns the meter metadata.
func (m *Meter) GetComponentMetadata() types.ComponentMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata updates the meter name and id.
func (m *Meter) SetComponentMetadata(name string, id string) {
	m.mu.Lock()
	m.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: m.componentMetadata.Type}
	m.mu.Unlock()
}

// GetMetricCount returns the current count for a metric.
func (m *Meter) GetMetricCount(metricName string) uint64 {
	m.mu.Lock()
	counter, exists := m.counts[metricName]
	m.mu.Unlock()
	if !exists || counter == nil {
		return 0
	}
	return atomic.LoadUint64(counter)
}

// GetMetricNames returns the tracked metric names in registration order.
func (m *Meter) GetMetricNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.metricNames...)
}

// Gatherer returns the private registry, or nil when an external registerer was supplied.
func (m *Meter) Gatherer() prometheus.Gatherer {
	return m.gatherer
}
