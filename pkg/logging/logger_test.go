package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" Info ", InfoLevel},
		{"warn", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Level(42).String() = %q", Level(42).String())
	}
	if WarnLevel.String() != "WARN" {
		t.Errorf("WarnLevel.String() = %q", WarnLevel.String())
	}
}

func TestDomainFields(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{RunID("abc"), "run_id", "abc"},
		{Source("edges.txt"), "source", "edges.txt"},
		{Edges(7), "edges", uint64(7)},
		{Wedges(9), "wedges", uint64(9)},
		{Transitivity(0.5), "transitivity", 0.5},
		{Triangles(2), "triangles", 2.0},
		{Capacity("wedge", 10), "wedge_capacity", 10},
		{Latency(2 * time.Second), "latency", "2s"},
		{Error(errors.New("boom")), "error", "boom"},
		{Error(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("field = %+v, want {%s %v}", tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Levels = %s, %s; want WARN, ERROR", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_WithSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("estimator"), RunID("r1"))
	child.Info("update", Edges(3))
	logger.Info("parent")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Fields["component"] != "estimator" || entries[0].Fields["run_id"] != "r1" {
		t.Errorf("child fields = %v", entries[0].Fields)
	}
	if entries[0].Fields["edges"] != float64(3) {
		t.Errorf("edges field = %v, want 3", entries[0].Fields["edges"])
	}
	if entries[1].Fields != nil {
		t.Errorf("parent should carry no fields, got %v", entries[1].Fields)
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	logger.SetLevel(ErrorLevel)

	if logger.GetLevel() != ErrorLevel {
		t.Errorf("GetLevel() = %v, want ErrorLevel", logger.GetLevel())
	}

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Error("Expected no output for Info at ErrorLevel")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(logger, "ingest", Source("mem"))
	op.End(Edges(10))
	op.EndError(errors.New("closed"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Fields["latency"] == nil || entries[0].Fields["source"] != "mem" || entries[0].Fields["edges"] != float64(10) {
		t.Errorf("End fields = %v", entries[0].Fields)
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "closed" {
		t.Errorf("EndError entry = %+v", entries[1])
	}
	if _, leaked := entries[1].Fields["edges"]; leaked {
		t.Error("End's extra fields leaked into a later entry")
	}
}

func TestGlobalHelpers(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(nil)

	Debug("d")
	Info("i")
	Warn("w")
	ErrorLog("e")
	With(Component("cli")).Info("child")

	entries := decodeLines(t, &buf)
	if len(entries) != 5 {
		t.Fatalf("Expected 5 log entries, got %d", len(entries))
	}
	if entries[4].Fields["component"] != "cli" {
		t.Errorf("component = %v, want cli", entries[4].Fields["component"])
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("STREAMTRI_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "debug")
	if LevelFromEnv() != DebugLevel {
		t.Errorf("LevelFromEnv() with LOG_LEVEL=debug = %v", LevelFromEnv())
	}

	t.Setenv("STREAMTRI_LOG_LEVEL", "error")
	if LevelFromEnv() != ErrorLevel {
		t.Errorf("LevelFromEnv() with STREAMTRI_LOG_LEVEL=error = %v", LevelFromEnv())
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("progress", Edges(uint64(i)), Transitivity(0.25))
		buf.Reset()
	}
}
