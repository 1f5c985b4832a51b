// Package logger provides a small leveled logger that writes to a file.
// The TUI owns the terminal, so nothing here ever touches stdout or
// stderr; with no file configured every call is a no-op.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables all output.
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level. Unknown strings mean info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	case "none", "NONE", "":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger writes timestamped leveled lines to a file.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
	file  *os.File
}

// New opens path for appending and returns a logger writing to it. An
// empty path or LevelNone yields a disabled logger.
func New(level Level, path string) (*Logger, error) {
	if level == LevelNone || path == "" {
		return &Logger{level: LevelNone, out: log.New(io.Discard, "", 0)}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &Logger{level: level, out: log.New(f, "", 0), file: f}, nil
}

var (
	global     *Logger
	globalOnce sync.Once
)

// Init sets up the package-level logger. Only the first call has effect.
func Init(level Level, path string) error {
	var err error
	globalOnce.Do(func() {
		global, err = New(level, path)
	})
	return err
}

// Default returns the package-level logger, disabled if Init never ran.
func Default() *Logger {
	if global == nil {
		return &Logger{level: LevelNone, out: log.New(io.Discard, "", 0)}
	}
	return global
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level || l.level == LevelNone {
		return
	}
	stamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("%s [%s] %s", stamp, level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package-level shortcuts using the Default logger.

func Debug(format string, args ...any) { Default().Debug(format, args...) }
func Info(format string, args ...any)  { Default().Info(format, args...) }
func Warn(format string, args ...any)  { Default().Warn(format, args...) }
func Error(format string, args ...any) { Default().Error(format, args...) }
