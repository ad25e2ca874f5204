package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to Logger. Its level is held in an
// AtomicLevel so SetLevel takes effect on the fly.
type ZapLogger struct {
	log   *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewZapLogger builds a production zap logger at level ("debug", "info",
// "warn", "error" or "off").
func NewZapLogger(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(ParseLevel(level)))

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{log: l.Named(DefaultTag).Sugar(), level: cfg.Level}, nil
}

// NewZapLoggerFrom wraps an existing core, for tests and for hosts that
// already own a zap pipeline.
func NewZapLoggerFrom(l *zap.Logger, level Level) *ZapLogger {
	atom := zap.NewAtomicLevelAt(zapLevel(level))
	core := &levelCore{Core: l.Core(), level: atom}
	return &ZapLogger{log: zap.New(core).Named(DefaultTag).Sugar(), level: atom}
}

func (z *ZapLogger) Debugf(format string, args ...any) { z.log.Debugf(format, args...) }
func (z *ZapLogger) Infof(format string, args ...any)  { z.log.Infof(format, args...) }
func (z *ZapLogger) Warnf(format string, args ...any)  { z.log.Warnf(format, args...) }
func (z *ZapLogger) Errorf(format string, args ...any) { z.log.Errorf(format, args...) }

func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(zapLevel(level))
}

func (z *ZapLogger) Level() Level {
	switch l := z.level.Level(); {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarn
	case l <= zapcore.FatalLevel:
		return LevelError
	default:
		return LevelOff
	}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelOff:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

// levelCore gates an existing core with an adjustable level.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}
