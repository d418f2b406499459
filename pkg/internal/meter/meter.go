package meter

import (
	"errors"
	"sync"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every exported Prometheus metric.
const DefaultNamespace = "ppglab"

// Meter keeps in-process counters and mirrors them into Prometheus collectors.
type Meter struct {
	componentMetadata types.ComponentMetadata
	mu                sync.Mutex
	counts            map[string]*uint64
	metricNames       []string

	namespace  string
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	events          *prometheus.CounterVec
	stages          *prometheus.CounterVec
	stageLatency    *prometheus.HistogramVec
	analysisLatency prometheus.Histogram
	hostCPU         prometheus.Gauge
	hostMemory      prometheus.Gauge

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewMeter builds a meter. Without WithRegisterer it registers on a private registry,
// reachable through Gatherer, so it never touches the process-wide default.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:    make(map[string]*uint64),
		namespace: DefaultNamespace,
	}
	m.initializeMetrics()

	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}

	if m.registerer == nil {
		registry := prometheus.NewRegistry()
		m.registerer = registry
		m.gatherer = registry
	}
	m.registerCollectors()
	return m
}

func (m *Meter) initializeMetrics() {
	for _, name := range []string{
		types.MetricAnalysisStartedCount,
		types.MetricAnalysisCompleteCount,
		types.MetricAnalysisRejectedCount,
		types.MetricPartialResultCount,
		types.MetricStageCompleteCount,
		types.MetricStageErrorCount,
		types.MetricSamplesAnalyzedCount,
	} {
		var zero uint64
		m.counts[name] = &zero
		m.metricNames = append(m.metricNames, name)
	}
}

func (m *Meter) registerCollectors() {
	m.events = register(m.registerer, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "events_total",
			Help:      "Pipeline events by metric name.",
		},
		[]string{"metric"},
	))
	m.stages = register(m.registerer, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "stage_outcomes_total",
			Help:      "Stage outcomes by stage and error kind (ok for success).",
		},
		[]string{"stage", "kind"},
	))
	m.stageLatency = register(m.registerer, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "stage_duration_seconds",
			Help:      "Stage latency in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"stage"},
	))
	m.analysisLatency = register(m.registerer, prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	))
	m.hostCPU = register(m.registerer, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "host_cpu_percent",
		Help:      "Host CPU utilization at the last SampleHost call.",
	}))
	m.hostMemory = register(m.registerer, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "host_memory_used_percent",
		Help:      "Host memory in use at the last SampleHost call.",
	}))
}

// register adds c to reg, reusing an identical collector that is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
