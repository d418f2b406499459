package internallogger

import (
	"io"

	"github.com/joeydtaylor/ppglab/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel sets the minimum level from its name ("debug", "info", ...).
// Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *settings) {
		s.level = ConvertLevel(parseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment makes DPanic entries panic.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *settings) {
		s.development = dev
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *settings) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			s.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *settings) {
		s.fields[logschema.FieldSchema] = schema
	}
}

// LoggerWithWriter sends the base core to w instead of stdout.
func LoggerWithWriter(w io.Writer) LoggerOption {
	return func(s *settings) {
		s.output = zapcore.AddSync(w)
	}
}

// ZapAdapterWithCallerSkip adds skip caller frames to the default depth.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(s *settings) {
		s.callerSkip += skip
	}
}
