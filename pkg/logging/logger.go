// Package logging provides the operator-facing log channels for the
// gate. App carries diagnostics (config faults, store errors, verify
// mismatches); Access carries one line per gate decision. Both write
// logfmt or JSON through go-kit/log, to stderr by default or to a
// rotating file when configured.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Log levels accepted by Config.Level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config holds logging configuration.
type Config struct {
	Path    string // log file path; empty logs to stderr
	Level   string // minimum level, default info
	JSON    bool   // JSON instead of logfmt
	MaxSize int64  // rotation threshold in bytes, default 10MB
}

// Logger is a leveled key-value logger.
type Logger struct {
	kit log.Logger
}

var (
	// App is the application diagnostic logger.
	App = newLogger(log.NewSyncWriter(os.Stderr), false, LevelInfo)

	// Access records gate decisions.
	Access = App

	writer io.Closer
)

// Initialize reconfigures the package loggers. Call once at startup.
func Initialize(cfg *Config) error {
	var w io.Writer = log.NewSyncWriter(os.Stderr)

	if cfg.Path != "" {
		maxSize := cfg.MaxSize
		if maxSize == 0 {
			maxSize = 10 * 1024 * 1024
		}
		rw, err := NewRotatingWriter(cfg.Path, maxSize, time.Minute)
		if err != nil {
			return err
		}
		w = rw
		writer = rw
	}

	lvl := cfg.Level
	if lvl == "" {
		lvl = LevelInfo
	}

	App = newLogger(w, cfg.JSON, lvl)
	Access = App
	return nil
}

// Close releases the log file, if one is open.
func Close() error {
	if writer == nil {
		return nil
	}
	err := writer.Close()
	writer = nil
	return err
}

func newLogger(w io.Writer, jsonFormat bool, lvl string) *Logger {
	var kl log.Logger
	if jsonFormat {
		kl = log.NewJSONLogger(w)
	} else {
		kl = log.NewLogfmtLogger(w)
	}
	kl = level.NewFilter(kl, levelOption(lvl))
	kl = log.With(kl, "ts", log.DefaultTimestampUTC)
	return &Logger{kit: kl}
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case LevelDebug:
		return level.AllowDebug()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	}
	return level.AllowInfo()
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	_ = level.Debug(l.kit).Log(append([]interface{}{"msg", msg}, keyvals...)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	_ = level.Info(l.kit).Log(append([]interface{}{"msg", msg}, keyvals...)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	_ = level.Warn(l.kit).Log(append([]interface{}{"msg", msg}, keyvals...)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	_ = level.Error(l.kit).Log(append([]interface{}{"msg", msg}, keyvals...)...)
}
