// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initOnce      sync.Once
	logOutput     io.Writer = io.Discard

	// debugFilter prints filter decisions to stderr. Set via EnableFilterDebug.
	debugFilter bool
)

// Init initializes the logger package with an unfiltered handler.
func Init(level slog.Level, output io.Writer) {
	InitWithConfig(level, output, nil)
}

// InitWithConfig initializes the logger, dropping records that cfg filters
// out. A nil cfg disables filtering. Only the first call has any effect.
func InitWithConfig(level slog.Level, output io.Writer, cfg *Config) {
	initOnce.Do(func() {
		if output == nil {
			output = io.Discard
		}
		logOutput = output
		logLevel = new(slog.LevelVar)
		logLevel.Set(level)

		opts := slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
						source.File = filepath.Base(source.File)
					}
				}
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
				}
				return a
			},
		}
		var handler slog.Handler = slog.NewTextHandler(output, &opts)
		if cfg != nil {
			cfg.process()
			handler = newFilteringHandler(handler, cfg)
		}
		defaultLogger = slog.New(handler)

		// PC=0: the init record carries no source.
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
		r.AddAttrs(slog.String("level", level.String()))
		_ = handler.Handle(context.Background(), r)
	})
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() {
	initOnce.Do(func() {
		logLevel = new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel})
		defaultLogger = slog.New(handler)
	})
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	ensureInitialized()
	logLevel.Set(level)
}

// EnableFilterDebug toggles stderr tracing of filter decisions.
func EnableFilterDebug(on bool) {
	debugFilter = on
}

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...interface{}) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a tag used by tag filters.
func DebugTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, nil, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, nil, format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	return defaultLogger
}
