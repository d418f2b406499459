package builder

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/meter"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

// Meter counts pipeline events and exports them to Prometheus.
type Meter = meter.Meter

// HostUsage is one host CPU and memory reading.
type HostUsage = meter.HostUsage

// Here we re-export the constants from the types package
const (
	MetricAnalysisStartedCount  MetricName = MetricName(types.MetricAnalysisStartedCount)
	MetricAnalysisCompleteCount MetricName = MetricName(types.MetricAnalysisCompleteCount)
	MetricAnalysisRejectedCount MetricName = MetricName(types.MetricAnalysisRejectedCount)
	MetricPartialResultCount    MetricName = MetricName(types.MetricPartialResultCount)
	MetricStageCompleteCount    MetricName = MetricName(types.MetricStageCompleteCount)
	MetricStageErrorCount       MetricName = MetricName(types.MetricStageErrorCount)
	MetricSamplesAnalyzedCount  MetricName = MetricName(types.MetricSamplesAnalyzedCount)
)

// NewMeter creates a Meter on a private registry unless MeterWithRegisterer is given.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	return meter.NewMeter(options...)
}

// MeterWithRegisterer registers the meter's collectors on reg.
func MeterWithRegisterer(reg prometheus.Registerer) types.Option[*Meter] {
	return meter.WithRegisterer(reg)
}

// MeterWithNamespace sets the Prometheus namespace.
func MeterWithNamespace(namespace string) types.Option[*Meter] {
	return meter.WithNamespace(namespace)
}

// MeterWithLogger attaches loggers to the meter.
func MeterWithLogger(logger ...types.Logger) types.Option[*Meter] {
	return meter.WithLogger(logger...)
}

// MeterWithComponentMetadata overrides the meter name and id.
func MeterWithComponentMetadata(name string, id string) types.Option[*Meter] {
	return meter.WithComponentMetadata(name, id)
}
