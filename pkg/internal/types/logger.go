package types

// LogLevel is the severity of a log entry.
type LogLevel int

// SinkType names a log destination.
type SinkType string

const (
	FileSink   SinkType = "file"
	StdoutSink SinkType = "stdout"
)

const (
	DebugLevel  LogLevel = iota // DebugLevel is per-stage detail.
	InfoLevel                   // InfoLevel is per-call summaries.
	WarnLevel                   // WarnLevel marks stages that produced partial results.
	ErrorLevel                  // ErrorLevel marks calls rejected outright.
	DPanicLevel                 // DPanicLevel panics in development mode.
	PanicLevel                  // PanicLevel logs then panics.
	FatalLevel                  // FatalLevel logs then exits.
)

// SinkConfig configures one log sink.
type SinkConfig struct {
	Type   string                 // "file" or "stdout"
	Config map[string]interface{} // Sink-specific settings such as "path".
}

// Logger is the structured logging surface used by every component.
type Logger interface {
	GetLevel() LogLevel
	SetLevel(LogLevel)
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	DPanic(msg string, keysAndValues ...interface{})
	Panic(msg string, keysAndValues ...interface{})
	Fatal(msg string, keysAndValues ...interface{})
	Flush() error
	AddSink(identifier string, config SinkConfig) error
	RemoveSink(identifier string) error
	ListSinks() ([]string, error)
}
