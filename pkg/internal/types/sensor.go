package types

import "time"

// Sensor receives stage events from a pipeline run. Callbacks are registered up front
// and invoked synchronously from the analyzing goroutine.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)

	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter

	RegisterOnAnalysisStart(...func(c ComponentMetadata, channels int, samples int))
	RegisterOnStageComplete(...func(c ComponentMetadata, stage Stage, channel string, elapsed time.Duration))
	RegisterOnStageError(...func(c ComponentMetadata, stage Stage, channel string, err *StageError))
	RegisterOnAnalysisComplete(...func(c ComponentMetadata, failures int, elapsed time.Duration))
	RegisterOnAnalysisRejected(...func(c ComponentMetadata, err error))

	InvokeOnAnalysisStart(c ComponentMetadata, channels int, samples int)
	InvokeOnStageComplete(c ComponentMetadata, stage Stage, channel string, elapsed time.Duration)
	InvokeOnStageError(c ComponentMetadata, stage Stage, channel string, err *StageError)
	InvokeOnAnalysisComplete(c ComponentMetadata, failures int, elapsed time.Duration)
	InvokeOnAnalysisRejected(c ComponentMetadata, err error)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})
}
