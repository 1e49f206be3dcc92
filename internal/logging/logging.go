// Package logging writes one JSON object per line, the format every component
// of the service logs in. Lines are produced by a log/slog JSON handler.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Reserved keys are set by the logger itself and dropped from caller fields.
const (
	keyTime      = "ts"
	keyLevel     = "level"
	keyEvent     = "event"
	keyComponent = "component"
	keyError     = "error_message"
)

// Logger emits structured JSON log lines. It is safe for concurrent use.
type Logger struct {
	base      *slog.Logger
	component string
}

// New creates a Logger writing to w with timestamps rendered in loc.
func New(w io.Writer, loc *time.Location) *Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.Local
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: replaceAttr(loc),
	})
	return &Logger{base: slog.New(h)}
}

// Default logs to stdout in the server's local zone.
func Default() *Logger {
	return New(os.Stdout, time.Local)
}

// replaceAttr renames slog's built-in keys to ts, level and event.
func replaceAttr(loc *time.Location) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.TimeKey:
			return slog.String(keyTime, a.Value.Time().In(loc).Format(time.RFC3339Nano))
		case slog.LevelKey:
			return slog.String(keyLevel, strings.ToLower(a.Value.String()))
		case slog.MessageKey:
			a.Key = keyEvent
		}
		return a
	}
}

// With returns a logger that tags every line with component, replacing any
// component set earlier. The handler is shared.
func (l *Logger) With(component string) *Logger {
	return &Logger{base: l.base, component: component}
}

// Slog exposes the underlying slog logger with the component attached, for
// libraries that accept one.
func (l *Logger) Slog() *slog.Logger {
	if l.component == "" {
		return l.base
	}
	return l.base.With(keyComponent, l.component)
}

// Info logs event at info level.
func (l *Logger) Info(event string, fields map[string]any) {
	l.write(slog.LevelInfo, event, nil, fields)
}

// Error logs event at error level with err's message under "error_message".
func (l *Logger) Error(event string, err error, fields map[string]any) {
	l.write(slog.LevelError, event, err, fields)
}

func (l *Logger) write(level slog.Level, event string, err error, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields)+2)
	if l.component != "" {
		attrs = append(attrs, slog.String(keyComponent, l.component))
	}
	if err != nil {
		attrs = append(attrs, slog.String(keyError, err.Error()))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if reserved(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}

	l.base.LogAttrs(context.Background(), level, event, attrs...)
}

func reserved(k string) bool {
	switch k {
	case keyTime, keyLevel, keyEvent, keyComponent, keyError:
		return true
	}
	return false
}
