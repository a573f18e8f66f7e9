package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferedLogger(t *testing.T, level LogLevel) (*ZapLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := NewZapLogger(Config{Level: level, Format: JSONFormat, Output: &buf})
	if err != nil {
		t.Fatalf("NewZapLogger failed: %v", err)
	}
	return log, &buf
}

func TestZapLogger_JSONOutput(t *testing.T) {
	log, buf := newBufferedLogger(t, InfoLevel)

	log.Info("state replaced", "active_criteria", 2)
	log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v (output %q)", err, buf.String())
	}
	if entry["message"] != "state replaced" {
		t.Fatalf("expected message %q, got %v", "state replaced", entry["message"])
	}
	if entry["level"] != "info" {
		t.Fatalf("expected level info, got %v", entry["level"])
	}
	if entry["active_criteria"] != float64(2) {
		t.Fatalf("expected active_criteria 2, got %v", entry["active_criteria"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("expected timestamp field, got %v", entry)
	}
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	log, buf := newBufferedLogger(t, WarnLevel)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept too")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected debug/info entries to be filtered, got %q", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "kept too") {
		t.Fatalf("expected warn/error entries in output, got %q", out)
	}
}

func TestZapLogger_With(t *testing.T) {
	log, buf := newBufferedLogger(t, InfoLevel)

	child := log.With("component", "sortstate")
	child.Info("toggle")
	log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["component"] != "sortstate" {
		t.Fatalf("expected component field from With, got %v", entry)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseLogLevel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseLogLevel(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLogLevel(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLogLevel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	if _, err := ParseLogFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	got, err := ParseLogFormat("console")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TextFormat {
		t.Fatalf("expected console to map to text format, got %q", got)
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	// Must not panic, and With must keep discarding.
	log.Debug("a")
	log.With("k", "v").Error("b", "k2", 2)
}
