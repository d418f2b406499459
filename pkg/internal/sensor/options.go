package sensor

import (
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// WithLogger attaches loggers to the sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter connects meters that the sensor updates on every event.
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithOnAnalysisStartFunc registers callbacks for the start of an analysis call.
func WithOnAnalysisStartFunc(callback ...func(c types.ComponentMetadata, channels int, samples int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnAnalysisStart(callback...)
	}
}

// WithOnStageCompleteFunc registers callbacks for successful stages.
func WithOnStageCompleteFunc(callback ...func(c types.ComponentMetadata, stage types.Stage, channel string, elapsed time.Duration)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStageComplete(callback...)
	}
}

// WithOnStageErrorFunc registers callbacks for failed or degraded stages.
func WithOnStageErrorFunc(callback ...func(c types.ComponentMetadata, stage types.Stage, channel string, err *types.StageError)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStageError(callback...)
	}
}

// WithOnAnalysisCompleteFunc registers callbacks for assembled results.
func WithOnAnalysisCompleteFunc(callback ...func(c types.ComponentMetadata, failures int, elapsed time.Duration)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnAnalysisComplete(callback...)
	}
}

// WithOnAnalysisRejectedFunc registers callbacks for rejected windows.
func WithOnAnalysisRejectedFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnAnalysisRejected(callback...)
	}
}

// WithComponentMetadata overrides the sensor name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.SetComponentMetadata(name, id)
	}
}
