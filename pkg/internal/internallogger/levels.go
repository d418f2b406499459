package internallogger

import (
	"strings"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// levelTable lists every level once: its config name, its types value and its zap value.
var levelTable = []struct {
	name  string
	level types.LogLevel
	zap   zapcore.Level
}{
	{"debug", types.DebugLevel, zapcore.DebugLevel},
	{"info", types.InfoLevel, zapcore.InfoLevel},
	{"warn", types.WarnLevel, zapcore.WarnLevel},
	{"error", types.ErrorLevel, zapcore.ErrorLevel},
	{"dpanic", types.DPanicLevel, zapcore.DPanicLevel},
	{"panic", types.PanicLevel, zapcore.PanicLevel},
	{"fatal", types.FatalLevel, zapcore.FatalLevel},
}

// parseLogLevel maps a config name to a level; unknown names mean info.
func parseLogLevel(levelStr string) types.LogLevel {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	if name == "warning" {
		name = "warn"
	}
	for _, l := range levelTable {
		if l.name == name {
			return l.level
		}
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	for _, l := range levelTable {
		if l.level == level {
			return l.zap
		}
	}
	return zapcore.InfoLevel
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	for _, l := range levelTable {
		if l.zap == level {
			return l.level
		}
	}
	return types.InfoLevel
}
