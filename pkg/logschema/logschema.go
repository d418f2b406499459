package logschema

// Log schema constants for ppglab structured logs.
const (
	SchemaID    = "ppglab.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldStage     = "stage"
	FieldChannel   = "channel"
	FieldResult    = "result"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
