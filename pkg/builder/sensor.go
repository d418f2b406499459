package builder

import (
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/sensor"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// NewSensor creates a sensor that observes pipeline events.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter connects meters that count every sensor event.
func SensorWithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meter...)
}

// SensorWithOnAnalysisStartFunc registers a callback for the OnAnalysisStart event.
func SensorWithOnAnalysisStartFunc(callback ...func(c ComponentMetadata, channels int, samples int)) types.Option[types.Sensor] {
	return sensor.WithOnAnalysisStartFunc(callback...)
}

// SensorWithOnStageCompleteFunc registers a callback for the OnStageComplete event.
func SensorWithOnStageCompleteFunc(callback ...func(c ComponentMetadata, stage Stage, channel string, elapsed time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnStageCompleteFunc(callback...)
}

// SensorWithOnStageErrorFunc registers a callback for the OnStageError event.
func SensorWithOnStageErrorFunc(callback ...func(c ComponentMetadata, stage Stage, channel string, err *StageError)) types.Option[types.Sensor] {
	return sensor.WithOnStageErrorFunc(callback...)
}

// SensorWithOnAnalysisCompleteFunc registers a callback for the OnAnalysisComplete event.
func SensorWithOnAnalysisCompleteFunc(callback ...func(c ComponentMetadata, failures int, elapsed time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnAnalysisCompleteFunc(callback...)
}

// SensorWithOnAnalysisRejectedFunc registers a callback for the OnAnalysisRejected event.
func SensorWithOnAnalysisRejectedFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnAnalysisRejectedFunc(callback...)
}
