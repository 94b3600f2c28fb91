package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.Info("fetch attempt failed", "attempt", 2, "error", errors.New("status 503"))
	_ = logger.Sync()

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (raw=%q)", err, buf.String())
	}
	if entry["msg"] != "fetch attempt failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if got, _ := entry["attempt"].(float64); got != 2 {
		t.Fatalf("unexpected attempt: %v", entry["attempt"])
	}
	if entry["error"] != "status 503" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if caller, _ := entry["caller"].(string); !strings.HasPrefix(caller, "logging/logger_test.go") {
		t.Fatalf("expected caller to point at the test, got %q", caller)
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.InfoContext(context.Background(), "dropped")
	logger.DebugContext(context.Background(), "dropped too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	logger.WarnContext(context.Background(), "kept")
	if !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Fatalf("expected warn entry, got %q", buf.String())
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"season", "2023-2024", "dangling"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[1].Key != "dangling" {
		t.Fatalf("unexpected trailing key: %s", fields[1].Key)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		want Level
		ok   bool
	}{
		"debug":   {LevelDebug, true},
		" INFO ":  {LevelInfo, true},
		"warning": {LevelWarn, true},
		"error":   {LevelError, true},
		"":        {LevelInfo, false},
		"verbose": {LevelInfo, false},
	}
	for raw, tc := range cases {
		got, ok := ParseLevel(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v, %v", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewConsole_WritesReadableLine(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, LevelInfo).Named("fbref")

	logger.Warn("fbref fetch attempt failed", "attempt", 1)

	line := buf.String()
	for _, want := range []string{"WARN", "fbref", "fbref fetch attempt failed", `"attempt": 1`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in console line %q", want, line)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(line), "{") {
		t.Fatalf("expected console encoding, got JSON: %q", line)
	}
}
