package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		out = append(out, entry)
	}
	return out
}

func TestJSONLoggerFiltersBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelInfo)
	l.Debug("hidden", nil)
	l.Info("shown", map[string]any{"team": "red"})
	l.Warn("careful", nil)
	l.Error("broken", map[string]any{"error": "boom"})

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"info", "warn", "error"}
	for i, e := range entries {
		if e["level"] != want[i] {
			t.Fatalf("entry %d: expected level %q, got %v", i, want[i], e["level"])
		}
	}
	if entries[0]["team"] != "red" {
		t.Fatalf("expected field to be carried, got %v", entries[0])
	}
}

func TestJSONLoggerReservedFieldsAreNotOverwritten(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelDebug)
	l.now = func() time.Time { return time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC) }
	l.Info("question.resolved", map[string]any{"msg": "spoof", "level": "error"})

	entries := decodeLines(t, buf.Bytes())
	if entries[0]["msg"] != "question.resolved" || entries[0]["level"] != "info" {
		t.Fatalf("reserved fields overwritten: %v", entries[0])
	}
	if entries[0]["ts"] != "2026-03-01T20:00:00Z" {
		t.Fatalf("unexpected ts %v", entries[0]["ts"])
	}
}

func TestJSONLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	l, err := NewJSONLogger(path, ParseLevel("debug"))
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Debug("app.start", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if entries := decodeLines(t, data); len(entries) != 1 || entries[0]["msg"] != "app.start" {
		t.Fatalf("unexpected log contents %q", data)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *JSONLogger
	l.Info("ignored", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close nil logger: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, "WARN": LevelWarn, " error ": LevelError, "": LevelInfo, "bogus": LevelInfo}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
