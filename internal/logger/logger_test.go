package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Config{Level: "info", Format: "json", Out: &buf})

	l.Debug("hidden")
	l.Info("calculation.done", "outcome", "SUCCESS")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if entry["msg"] != "calculation.done" || entry["outcome"] != "SUCCESS" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if L() != l {
		t.Fatal("expected L() to return the installed logger")
	}
}

func TestSetupTextDebug(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(Config{Level: "debug", Format: "text", Out: &buf})
	l.Debug("visible")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("expected text debug output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}
