package types

// Metric names tracked by Meter.
const (
	MetricAnalysisStartedCount  = "analysis_started_count"
	MetricAnalysisCompleteCount = "analysis_complete_count"
	MetricAnalysisRejectedCount = "analysis_rejected_count"
	MetricPartialResultCount    = "partial_result_count"
	MetricStageCompleteCount    = "stage_complete_count"
	MetricStageErrorCount       = "stage_error_count"
	MetricSamplesAnalyzedCount  = "samples_analyzed_count"
)

// Meter accumulates pipeline counters and latencies.
type Meter interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)

	IncrementCount(metric string)
	AddCount(metric string, delta uint64)
	GetMetricCount(metric string) uint64
	GetMetricNames() []string

	// RecordStage counts one stage outcome; kind is empty for a success.
	RecordStage(stage Stage, kind ErrorKind, seconds float64)
	// RecordAnalysis observes the wall time of one complete call.
	RecordAnalysis(seconds float64)

	ConnectLogger(...Logger)
}
