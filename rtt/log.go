package rtt

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// LevelTrace sits below slog.LevelDebug for per-transaction noise.
const LevelTrace slog.Level = slog.LevelDebug - 1

// Logger prints "LEVEL msg key=value ..." lines. Each line reaches w in a
// single Write so concurrent loggers on one channel do not interleave.
type Logger struct {
	w     io.Writer
	level slog.Level
	buf   []byte
}

// NewLogger returns a Logger printing records at level and above to w.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{w: w, level: level, buf: make([]byte, 0, 128)}
}

func (l *Logger) SetLevel(level slog.Level) { l.level = level }

func (l *Logger) Enabled(level slog.Level) bool { return level >= l.level }

func (l *Logger) Error(msg string, attrs ...slog.Attr) { l.LogAttrs(slog.LevelError, msg, attrs...) }
func (l *Logger) Warn(msg string, attrs ...slog.Attr)  { l.LogAttrs(slog.LevelWarn, msg, attrs...) }
func (l *Logger) Info(msg string, attrs ...slog.Attr)  { l.LogAttrs(slog.LevelInfo, msg, attrs...) }
func (l *Logger) Debug(msg string, attrs ...slog.Attr) { l.LogAttrs(slog.LevelDebug, msg, attrs...) }
func (l *Logger) Trace(msg string, attrs ...slog.Attr) { l.LogAttrs(LevelTrace, msg, attrs...) }

func (l *Logger) LogAttrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if level < l.level {
		return
	}
	b := l.buf[:0]
	b = append(b, levelStr(level)...)
	b = append(b, ' ')
	b = append(b, msg...)
	for _, a := range attrs {
		b = append(b, ' ')
		b = append(b, a.Key...)
		b = append(b, '=')
		b = appendValue(b, a.Value)
	}
	b = append(b, '\n')
	l.w.Write(b)
	l.buf = b
}

func appendValue(b []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return append(b, v.String()...)
	case slog.KindInt64:
		return strconv.AppendInt(b, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(b, v.Uint64(), 10)
	case slog.KindBool:
		return strconv.AppendBool(b, v.Bool())
	case slog.KindAny:
		return fmt.Appendf(b, "%+v", v.Any())
	}
	return append(b, v.String()...)
}

func levelStr(level slog.Level) string {
	if level == LevelTrace {
		return "TRACE"
	}
	return level.String()
}

// Must returns v, or logs err at error level and panics.
func Must[T any](l *Logger, v T, err error) T {
	if err != nil {
		l.Error("fatal", slog.String("err", err.Error()))
		panic(err)
	}
	return v
}
