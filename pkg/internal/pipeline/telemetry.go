package pipeline

import (
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// NotifyLoggers sends a log message to all attached loggers that accept the level.
func (p *Pipeline) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	type levelChecker interface {
		IsLevelEnabled(types.LogLevel) bool
	}

	for _, logger := range p.snapshotLoggers() {
		if logger == nil {
			continue
		}
		if lc, ok := logger.(levelChecker); ok && !lc.IsLevelEnabled(level) {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (p *Pipeline) snapshotLoggers() []types.Logger {
	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()
	return append([]types.Logger(nil), p.loggers...)
}

func (p *Pipeline) emitStart(channels, samples int) {
	for _, s := range p.GetSensors() {
		s.InvokeOnAnalysisStart(p.componentMetadata, channels, samples)
	}
	p.NotifyLoggers(types.InfoLevel, "Analysis started",
		"component", p.componentMetadata,
		"event", "AnalysisStart",
		"channels", channels,
		"samples", samples,
	)
}

func (p *Pipeline) emitStageComplete(stage types.Stage, channel string, elapsed time.Duration) {
	for _, s := range p.GetSensors() {
		s.InvokeOnStageComplete(p.componentMetadata, stage, channel, elapsed)
	}
	p.NotifyLoggers(types.DebugLevel, "Stage complete",
		"component", p.componentMetadata,
		"event", "StageComplete",
		"stage", stage,
		"channel", channel,
		"result", "ok",
		"duration_ms", float64(elapsed.Microseconds())/1000,
	)
}

func (p *Pipeline) emitStageError(stage types.Stage, channel string, err *types.StageError) {
	for _, s := range p.GetSensors() {
		s.InvokeOnStageError(p.componentMetadata, stage, channel, err)
	}
	p.NotifyLoggers(types.WarnLevel, "Stage failed",
		"component", p.componentMetadata,
		"event", "StageError",
		"stage", stage,
		"channel", channel,
		"result", string(err.Kind),
		"error", err.Message,
	)
}

func (p *Pipeline) emitComplete(failures int, elapsed time.Duration) {
	for _, s := range p.GetSensors() {
		s.InvokeOnAnalysisComplete(p.componentMetadata, failures, elapsed)
	}
	result := "complete"
	if failures > 0 {
		result = "partial"
	}
	p.NotifyLoggers(types.InfoLevel, "Analysis complete",
		"component", p.componentMetadata,
		"event", "AnalysisComplete",
		"result", result,
		"failures", failures,
		"duration_ms", float64(elapsed.Microseconds())/1000,
	)
}

func (p *Pipeline) emitRejected(err error) {
	for _, s := range p.GetSensors() {
		s.InvokeOnAnalysisRejected(p.componentMetadata, err)
	}
	p.NotifyLoggers(types.ErrorLevel, "Analysis rejected",
		"component", p.componentMetadata,
		"event", "AnalysisRejected",
		"result", string(types.KindOf(err)),
		"error", err,
	)
}
