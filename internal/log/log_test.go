package log

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "test"})
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)

	l.Trace("trace msg")
	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	out := buf.String()
	if strings.Contains(out, "trace msg") || strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("output contains messages below warn:\n%s", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("output missing warn/error messages:\n%s", out)
	}
}

func TestTraceLevel(t *testing.T) {
	l, buf := newTestLogger(LevelTrace)

	l.Trace("resolving %q", "core.ui")

	out := buf.String()
	if !strings.Contains(out, "[TRACE]") {
		t.Errorf("output missing TRACE tag:\n%s", out)
	}
	if !strings.Contains(out, `resolving "core.ui"`) {
		t.Errorf("format args not applied:\n%s", out)
	}
}

func TestWithField(t *testing.T) {
	l, buf := newTestLogger(LevelInfo)

	l.WithField("module", "core.ui").Info("loaded")

	out := buf.String()
	if !strings.Contains(out, "module=core.ui") {
		t.Errorf("output missing field:\n%s", out)
	}

	// Parent logger unaffected
	buf.Reset()
	l.Info("plain")
	if strings.Contains(buf.String(), "module=") {
		t.Error("WithField mutated the parent logger")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newTestLogger(LevelInfo)

	l.WithComponent("resolver").Info("hi")

	if !strings.Contains(buf.String(), "component=resolver") {
		t.Errorf("output missing component field:\n%s", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newTestLogger(LevelError)

	l.Info("hidden")
	l.SetLevel(LevelInfo)
	l.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("message logged below configured level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("message missing after SetLevel")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic despite having no output writer.
	Discard.Error("dropped")
	Discard.WithField("k", "v").Warn("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
