package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

// Logger is the printf-style logger the bridge writes to.
//
// StdLogger, NewZapLogger and NewZerologLogger cover the common backends;
// implement the interface to plug in anything else.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level controls what gets written by StdLogger.
//
// The ordering is: Debug < Info < Warn < Error < Off.
// Any message below the configured level is ignored.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// LevelSetter is implemented by loggers whose threshold can change at runtime.
type LevelSetter interface {
	SetLevel(level Level)
}

// LevelGetter is implemented by loggers that report their current threshold.
type LevelGetter interface {
	Level() Level
}

// ParseLevel maps "debug", "info", "warn", "error" and "off" to a Level.
// Anything else is LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelOff:
		return "off"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// StdLogger writes through the standard library log package.
type StdLogger struct {
	l     *stdlog.Logger
	mu    sync.RWMutex
	level Level
	tag   string
}

func NewStdLogger(w io.Writer, level Level) *StdLogger {
	if w == nil {
		w = os.Stderr
	}
	return &StdLogger{
		l:     stdlog.New(w, "", stdlog.LstdFlags),
		level: level,
		tag:   DefaultTag,
	}
}

// DefaultTag prefixes every StdLogger line.
const DefaultTag = "Aditum"

func NewDefault() *StdLogger {
	return NewStdLogger(os.Stderr, LevelInfo)
}

func (s *StdLogger) SetLevel(level Level) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

func (s *StdLogger) Level() Level {
	if s == nil {
		return LevelOff
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

func (s *StdLogger) SetTag(tag string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.tag = tag
	s.mu.Unlock()
}

func (s *StdLogger) printf(level Level, prefix, format string, args ...any) {
	if s == nil {
		return
	}
	s.mu.RLock()
	enabled, tag := level >= s.level, s.tag
	s.mu.RUnlock()
	if !enabled {
		return
	}
	if tag != "" {
		format = tag + ": " + format
	}
	s.l.Printf(prefix+format, args...)
}

func (s *StdLogger) Debugf(format string, args ...any) {
	s.printf(LevelDebug, "DEBUG: ", format, args...)
}

func (s *StdLogger) Infof(format string, args ...any) {
	s.printf(LevelInfo, "INFO: ", format, args...)
}

func (s *StdLogger) Warnf(format string, args ...any) {
	s.printf(LevelWarn, "WARN: ", format, args...)
}

func (s *StdLogger) Errorf(format string, args ...any) {
	s.printf(LevelError, "ERROR: ", format, args...)
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
