package sensor

import (
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// RegisterOnAnalysisStart registers callbacks run before any stage executes.
func (s *Sensor) RegisterOnAnalysisStart(callback ...func(types.ComponentMetadata, int, int)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnAnalysisStart = append(s.OnAnalysisStart, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnStageComplete registers callbacks for stages that produced a clean value.
func (s *Sensor) RegisterOnStageComplete(callback ...func(types.ComponentMetadata, types.Stage, string, time.Duration)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStageComplete = append(s.OnStageComplete, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnStageError registers callbacks for stages that recorded a failure.
func (s *Sensor) RegisterOnStageError(callback ...func(types.ComponentMetadata, types.Stage, string, *types.StageError)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStageError = append(s.OnStageError, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnAnalysisComplete registers callbacks run once a result has been assembled.
func (s *Sensor) RegisterOnAnalysisComplete(callback ...func(types.ComponentMetadata, int, time.Duration)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnAnalysisComplete = append(s.OnAnalysisComplete, callback...)
	s.callbackLock.Unlock()
}

// RegisterOnAnalysisRejected registers callbacks for structurally invalid windows.
func (s *Sensor) RegisterOnAnalysisRejected(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnAnalysisRejected = append(s.OnAnalysisRejected, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnAnalysisStart invokes registered start callbacks.
func (s *Sensor) InvokeOnAnalysisStart(c types.ComponentMetadata, channels int, samples int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnAnalysisStart) {
		if cb != nil {
			cb(c, channels, samples)
		}
	}
}

// InvokeOnStageComplete invokes registered stage completion callbacks.
func (s *Sensor) InvokeOnStageComplete(c types.ComponentMetadata, stage types.Stage, channel string, elapsed time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStageComplete) {
		if cb != nil {
			cb(c, stage, channel, elapsed)
		}
	}
}

// InvokeOnStageError invokes registered stage failure callbacks.
func (s *Sensor) InvokeOnStageError(c types.ComponentMetadata, stage types.Stage, channel string, err *types.StageError) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStageError) {
		if cb != nil {
			cb(c, stage, channel, err)
		}
	}
}

// InvokeOnAnalysisComplete invokes registered completion callbacks.
func (s *Sensor) InvokeOnAnalysisComplete(c types.ComponentMetadata, failures int, elapsed time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnAnalysisComplete) {
		if cb != nil {
			cb(c, failures, elapsed)
		}
	}
}

// InvokeOnAnalysisRejected invokes registered rejection callbacks.
func (s *Sensor) InvokeOnAnalysisRejected(c types.ComponentMetadata, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnAnalysisRejected) {
		if cb != nil {
			cb(c, err)
		}
	}
}
