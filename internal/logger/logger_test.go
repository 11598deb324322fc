package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_InitAndGet(t *testing.T) {
	buf := &bytes.Buffer{}
	config := Config{
		Level:  LevelInfo,
		Format: FormatText,
		Writer: buf,
	}

	err := Init(config)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	logger := Get()
	logger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("log output missing message: %s", output)
	}
}

func TestLogger_NullLogger(t *testing.T) {
	Shutdown() // make sure the global logger is uninitialized

	logger := Get()
	// must not panic
	logger.Info("should not crash")
	logger.Debug("should not crash")
	logger.Warn("should not crash")
	logger.Error("should not crash")
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	config := Config{
		Level:  LevelInfo,
		Format: FormatText,
		Writer: buf,
	}

	if err := Init(config); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	logger := With("component", "scanner")
	logger.Info("bound message")

	output := buf.String()
	if !strings.Contains(output, "component=scanner") {
		t.Errorf("log output missing bound field: %s", output)
	}
}

func TestLogger_DoubleInit(t *testing.T) {
	buf := &bytes.Buffer{}
	config := Config{Level: LevelInfo, Format: FormatText, Writer: buf}

	if err := Init(config); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	if err := Init(config); err == nil {
		t.Error("second Init() should fail")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	config := Config{Level: LevelWarn, Format: FormatText, Writer: buf}

	if err := Init(config); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	Get().Info("below threshold")
	Get().Warn("at threshold")

	output := buf.String()
	if strings.Contains(output, "below threshold") {
		t.Errorf("info line written despite warn level: %s", output)
	}
	if !strings.Contains(output, "at threshold") {
		t.Errorf("warn line missing: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("ParseFormat(json) should be JSON")
	}
	if ParseFormat("anything") != FormatText {
		t.Error("ParseFormat should default to text")
	}
}
