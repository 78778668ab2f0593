package core

// LogLevel orders log severities; a logger drops entries below its level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger is the structured logger every layer writes to.
// Fields are flat key/value pairs; request_id and user_id are added by the
// HTTP layer, and typed domain errors contribute their LogFields.
type Logger interface {
	SetLevel(level LogLevel)
	GetLevel() LogLevel
	Debug(message string, fields map[string]any)
	Info(message string, fields map[string]any)
	Warn(message string, fields map[string]any)
	Error(message string, fields map[string]any)
	// Flush writes out buffered entries; called once on shutdown
	Flush() error
}
