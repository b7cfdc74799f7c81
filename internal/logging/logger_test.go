package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "test", LevelWarn)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown warn")
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] shown error") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "test", LevelDebug).With("request_id", "abc")

	l.Info("stage done", "stage", "contour", "fragments", 3, "dangling")

	out := buf.String()
	for _, want := range []string{"[test] ", "request_id=abc", "stage=contour", "fragments=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "dangling") {
		t.Errorf("odd trailing key should be dropped, got %q", out)
	}
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerTo(&buf, "test", LevelDebug)
	_ = parent.With("child", "yes")

	parent.Info("parent line")
	if strings.Contains(buf.String(), "child=yes") {
		t.Errorf("parent logger picked up child fields: %q", buf.String())
	}
}
