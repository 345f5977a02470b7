package logger

import (
	"bytes"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("info line")
	if !strings.Contains(buf.String(), "info line") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()
	Debug("debug line")
	if strings.Contains(buf.String(), "debug line") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_Debug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("debug line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Warn("warn line")
	if strings.Contains(buf.String(), "warn line") {
		t.Error("Warn message should not be logged when Quiet=true")
	}

	Error("error line")
	if !strings.Contains(buf.String(), "error line") {
		t.Error("Error message should be logged when Quiet=true")
	}
}

func TestInit_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("json line", "key", "value")
	out := buf.String()
	if !strings.Contains(out, `"msg":"json line"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected attribute in JSON output, got: %s", out)
	}
}
