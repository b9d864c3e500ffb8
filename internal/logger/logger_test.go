package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelWarn)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN  warn 3") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "ERROR error 4") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestLogger_NamedSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriter(&buf, LevelDebug)
	child := root.Named("store").Named("sqlite")

	child.Info("opened")

	if !strings.Contains(buf.String(), "[store/sqlite] opened") {
		t.Errorf("expected named prefix, got %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelInfo)
	l.JSON = true
	l.Named("ingest").Info("scanned %d files", 3)

	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if e.Level != "INFO" || e.Logger != "ingest" || e.Message != "scanned 3 files" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestLogger_DiscardAndNil(t *testing.T) {
	Discard().Error("dropped")

	var l *Logger
	l.Info("nil logger must not panic")
	if l.Named("x") != nil {
		t.Error("expected nil child for nil logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"", LevelInfo},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
