// Package internallogger adapts zap to the types.Logger interface used by every
// ppglab component.
package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/ppglab/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the settings NewLogger builds from.
type LoggerOption func(*settings)

type settings struct {
	level       zapcore.Level
	development bool
	callerSkip  int
	fields      map[string]interface{}
	output      zapcore.WriteSyncer
}

// ZapLoggerAdapter implements types.Logger on top of a zap core tree: one base core
// plus any number of named sinks sharing the same atomic level.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerDepth int
	development bool
	sinks       map[string]sinkEntry
}

// NewLogger builds a JSON logger writing to stdout at info level unless options say
// otherwise. Every entry carries the log schema identifier.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	s := settings{
		level:      zapcore.InfoLevel,
		callerSkip: 2,
		fields:     map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
		output:     zapcore.Lock(os.Stdout),
	}
	for _, option := range options {
		option(&s)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(s.level),
		encConfig:   standardEncoderConfig(),
		callerDepth: s.callerSkip,
		development: s.development,
		baseFields:  fieldsFromMap(s.fields),
		sinks:       make(map[string]sinkEntry),
	}
	z.baseCore = zapcore.NewCore(zapcore.NewJSONEncoder(z.encConfig), s.output, z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}

func (z *ZapLoggerAdapter) rebuildLoggerLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.baseCore)
	for _, entry := range z.sinks {
		cores = append(cores, entry.core)
	}
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(z.callerDepth)}
	if z.development {
		opts = append(opts, zap.Development())
	}
	logger := zap.New(zapcore.NewTee(cores...), opts...)
	if len(z.baseFields) > 0 {
		logger = logger.With(z.baseFields...)
	}
	z.logger = logger
}

func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}
