// Package log writes levelled lines onto a hal.Logger.
package log

import (
	"fmt"
	"strings"
	"sync/atomic"

	"picospectrum/hal"
)

// Level defines the severity of a log message.
type Level uint32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
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
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string (case-insensitive) to a Level.
// Returns LevelInfo and false if the string is not recognized.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Logger prefixes lines with a level and a component name. Loggers derived
// with With share the sink and the level. A nil *Logger discards everything.
type Logger struct {
	out       hal.Logger
	level     *atomic.Uint32
	component string
}

// New returns a root logger writing to out at LevelInfo.
func New(out hal.Logger) *Logger {
	l := &Logger{out: out, level: new(atomic.Uint32)}
	l.level.Store(uint32(LevelInfo))
	return l
}

// With returns a logger for a named component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{out: l.out, level: l.level, component: component}
}

func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.level.Store(uint32(level))
}

func (l *Logger) Level() Level {
	if l == nil {
		return LevelError + 1
	}
	return Level(l.level.Load())
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.out != nil && level >= l.Level()
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	var b strings.Builder
	b.WriteString(level.String())
	b.WriteByte(' ')
	if l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, format, args...)
	l.out.WriteLineString(b.String())
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
