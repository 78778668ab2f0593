package logger

import (
	"github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// NoopLogger discards every entry; tests and disabled logging use it
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() core.Logger {
	return &NoopLogger{level: core.LogLevelInfo}
}

func (l *NoopLogger) SetLevel(level core.LogLevel) { l.level = level }
func (l *NoopLogger) GetLevel() core.LogLevel      { return l.level }

func (*NoopLogger) Debug(string, map[string]any) {}
func (*NoopLogger) Info(string, map[string]any)  {}
func (*NoopLogger) Warn(string, map[string]any)  {}
func (*NoopLogger) Error(string, map[string]any) {}
func (*NoopLogger) Flush() error                 { return nil }
