package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSON(&buf, LevelInfo)

	logger.With("component", "score").Warn("propagation failed", "match_id", "m-1", "error", errors.New("boom"))
	logger.Debug("dropped below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "propagation failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["component"] != "score" || entry["match_id"] != "m-1" || entry["error"] != "boom" {
		t.Fatalf("unexpected fields: %+v", entry)
	}
}

func TestFields_OddArgs(t *testing.T) {
	got := fields([]any{"a", 1, "dangling"})
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got))
	}
	if got[1].Key != "dangling" {
		t.Fatalf("unexpected trailing key: %s", got[1].Key)
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSON(&buf, LevelInfo)

	SetDefault(logger)
	t.Cleanup(func() { SetDefault(nil) })

	Default().Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Fatalf("expected default logger output, got %q", buf.String())
	}

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("default logger must never be nil")
	}
}
