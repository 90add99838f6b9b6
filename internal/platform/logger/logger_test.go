package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ogurasousui/codex-employee-service/internal/platform/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := WithComponent(NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf), "http")
	log.Info("started", "addr", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "started" || entry["component"] != "http" || entry["addr"] != ":8080" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewWithWriter_PlainFiltersLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "plain"}, &buf)
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	if got := strings.TrimSpace(buf.String()); got != "shown" {
		t.Fatalf("expected only the warn message, got %q", got)
	}
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := WithRequestID(NewWithWriter(config.LogConfig{Format: "json"}, &buf), "req-123")
	log.Error("employee request failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id req-123, got %v", entry["request_id"])
	}
}
