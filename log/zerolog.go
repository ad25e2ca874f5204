package log

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog logger to Logger.
type ZerologLogger struct {
	log   zerolog.Logger
	level atomic.Int32
}

// NewZerologLogger writes JSON lines to w, or console output when console is set.
func NewZerologLogger(w io.Writer, level Level, console bool) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	z := &ZerologLogger{
		log: zerolog.New(w).With().Timestamp().Str("component", DefaultTag).Logger(),
	}
	z.SetLevel(level)
	return z
}

func (z *ZerologLogger) SetLevel(level Level) {
	z.level.Store(int32(level))
}

func (z *ZerologLogger) Level() Level {
	return Level(z.level.Load())
}

func (z *ZerologLogger) enabled(level Level) bool {
	return level >= Level(z.level.Load())
}

func (z *ZerologLogger) Debugf(format string, args ...any) {
	if z.enabled(LevelDebug) {
		z.log.Debug().Msgf(format, args...)
	}
}

func (z *ZerologLogger) Infof(format string, args ...any) {
	if z.enabled(LevelInfo) {
		z.log.Info().Msgf(format, args...)
	}
}

func (z *ZerologLogger) Warnf(format string, args ...any) {
	if z.enabled(LevelWarn) {
		z.log.Warn().Msgf(format, args...)
	}
}

func (z *ZerologLogger) Errorf(format string, args ...any) {
	if z.enabled(LevelError) {
		z.log.Error().Msgf(format, args...)
	}
}
