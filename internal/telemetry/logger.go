package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// JSONLogger writes one JSON object per line. Entries below the minimum level
// are dropped.
type JSONLogger struct {
	mu  sync.Mutex
	w   io.WriteCloser
	min Level
	now func() time.Time
}

func NewJSONLogger(path string, min Level) (*JSONLogger, error) {
	if path == "" {
		return &JSONLogger{w: nopCloser{Writer: io.Discard}, min: min, now: time.Now}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLogger{w: f, min: min, now: time.Now}, nil
}

// NewWriterLogger logs to w without taking ownership of it.
func NewWriterLogger(w io.Writer, min Level) *JSONLogger {
	return &JSONLogger{w: nopCloser{Writer: w}, min: min, now: time.Now}
}

func (l *JSONLogger) Debug(msg string, fields map[string]any) {
	l.log(LevelDebug, msg, fields)
}

func (l *JSONLogger) Info(msg string, fields map[string]any) {
	l.log(LevelInfo, msg, fields)
}

func (l *JSONLogger) Warn(msg string, fields map[string]any) {
	l.log(LevelWarn, msg, fields)
}

func (l *JSONLogger) Error(msg string, fields map[string]any) {
	l.log(LevelError, msg, fields)
}

func (l *JSONLogger) log(level Level, msg string, fields map[string]any) {
	if l == nil || l.w == nil || level < l.min {
		return
	}
	entry := map[string]any{
		"ts":    l.now().UTC().Format(time.RFC3339Nano),
		"level": level.String(),
		"msg":   msg,
	}
	for k, v := range fields {
		if k == "ts" || k == "level" || k == "msg" {
			continue
		}
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *JSONLogger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
