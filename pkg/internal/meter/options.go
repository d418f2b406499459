package meter

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// WithRegisterer registers the collectors on reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) types.Option[*Meter] {
	return func(m *Meter) {
		m.registerer = reg
		if g, ok := reg.(prometheus.Gatherer); ok {
			m.gatherer = g
		}
	}
}

// WithNamespace overrides DefaultNamespace.
func WithNamespace(namespace string) types.Option[*Meter] {
	return func(m *Meter) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithLogger attaches loggers to the meter.
func WithLogger(logger ...types.Logger) types.Option[*Meter] {
	return func(m *Meter) {
		m.ConnectLogger(logger...)
	}
}

// WithComponentMetadata overrides the meter name and id.
func WithComponentMetadata(name string, id string) types.Option[*Meter] {
	return func(m *Meter) {
		m.SetComponentMetadata(name, id)
	}
}
