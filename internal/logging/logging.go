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

// Logger writes one JSON object per line through slog. Every entry carries "ts"
// in the configured location and a "level" ("error" when status is "error",
// "info" otherwise, unless the caller sets it).
type Logger struct {
	slog *slog.Logger
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, strings.ToLower(lvl.String()))
				}
			case slog.MessageKey:
				if a.Value.String() == "" {
					return slog.Attr{}
				}
			}
			return a
		},
	})
	return &Logger{slog: slog.New(h)}
}

// Stdout returns a Logger writing to os.Stdout.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Discard returns a Logger that drops every entry.
func Discard() *Logger {
	return New(io.Discard, time.UTC)
}

// Log writes data as one entry. "msg" and "level" are lifted out of data; the
// remaining fields are written in key order.
func (l *Logger) Log(data map[string]any) {
	if l == nil {
		return
	}
	level := slog.LevelInfo
	if data["status"] == "error" {
		level = slog.LevelError
	}
	if s, ok := data["level"].(string); ok {
		var parsed slog.Level
		if parsed.UnmarshalText([]byte(s)) == nil {
			level = parsed
		}
	}
	msg, _ := data["msg"].(string)

	keys := make([]string, 0, len(data))
	for k := range data {
		if k == "msg" || k == "level" || k == "ts" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, data[k]))
	}
	l.slog.LogAttrs(context.Background(), level, msg, attrs...)
}

// Info logs msg with extra fields at info level.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(withMsg("info", msg, fields))
}

// Error logs msg and err with extra fields at error level.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	entry := withMsg("error", msg, fields)
	if err != nil {
		entry["error"] = err.Error()
	}
	l.Log(entry)
}

func withMsg(level, msg string, fields map[string]any) map[string]any {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	return entry
}
