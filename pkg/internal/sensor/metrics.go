package sensor

import (
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func (s *Sensor) snapshotMeters() []types.Meter {
	s.metersLock.Lock()
	meters := append([]types.Meter(nil), s.meters...)
	s.metersLock.Unlock()
	return meters
}

func (s *Sensor) incrementMeterCounters(metric string) {
	for _, m := range s.snapshotMeters() {
		m.IncrementCount(metric)
	}
}

// decorateCallbacks prepends the hooks that translate sensor events into meter updates.
func (s *Sensor) decorateCallbacks(options ...types.Option[types.Sensor]) []types.Option[types.Sensor] {
	decorators := []types.Option[types.Sensor]{
		WithOnAnalysisStartFunc(func(c types.ComponentMetadata, channels int, samples int) {
			for _, m := range s.snapshotMeters() {
				m.IncrementCount(types.MetricAnalysisStartedCount)
				m.AddCount(types.MetricSamplesAnalyzedCount, uint64(channels*samples))
			}
		}),
		WithOnStageCompleteFunc(func(c types.ComponentMetadata, stage types.Stage, channel string, elapsed time.Duration) {
			for _, m := range s.snapshotMeters() {
				m.IncrementCount(types.MetricStageCompleteCount)
				m.RecordStage(stage, "", elapsed.Seconds())
			}
		}),
		WithOnStageErrorFunc(func(c types.ComponentMetadata, stage types.Stage, channel string, err *types.StageError) {
			kind := types.KindUnknown
			if err != nil {
				kind = err.Kind
			}
			for _, m := range s.snapshotMeters() {
				m.IncrementCount(types.MetricStageErrorCount)
				m.RecordStage(stage, kind, 0)
			}
		}),
		WithOnAnalysisCompleteFunc(func(c types.ComponentMetadata, failures int, elapsed time.Duration) {
			for _, m := range s.snapshotMeters() {
				m.IncrementCount(types.MetricAnalysisCompleteCount)
				if failures > 0 {
					m.IncrementCount(types.MetricPartialResultCount)
				}
				m.RecordAnalysis(elapsed.Seconds())
			}
		}),
		WithOnAnalysisRejectedFunc(func(c types.ComponentMetadata, err error) {
			s.incrementMeterCounters(types.MetricAnalysisRejectedCount)
		}),
	}
	return append(decorators, options...)
}
