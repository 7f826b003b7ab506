package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format json, got %s", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected default output stderr, got %s", cfg.Output)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg.Level = "info"
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := FromZerolog(zerolog.New(&buf)).WithComponent("restclient")

	l.Info("request completed")

	out := buf.String()
	if !strings.Contains(out, `"component":"restclient"`) {
		t.Errorf("expected component field, got %s", out)
	}
	if !strings.Contains(out, "request completed") {
		t.Errorf("expected message, got %s", out)
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := FromZerolog(zerolog.New(&buf)).WithFields(map[string]interface{}{
		FieldMethod: "GET",
		FieldStatus: 200,
	})

	l.Info("done")

	out := buf.String()
	if !strings.Contains(out, `"method":"GET"`) {
		t.Errorf("expected method field, got %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Errorf("expected status field, got %s", out)
	}
}

func TestLogger_PerCallFields(t *testing.T) {
	var buf bytes.Buffer
	l := FromZerolog(zerolog.New(&buf))

	l.Warn("retrying request", Fields(FieldAttempt, 1, FieldWait, int64(500)))

	out := buf.String()
	if !strings.Contains(out, `"attempt":1`) {
		t.Errorf("expected attempt field, got %s", out)
	}
	if !strings.Contains(out, `"wait_ms":500`) {
		t.Errorf("expected wait_ms field, got %s", out)
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	l := FromZerolog(zerolog.New(&buf)).WithError(errTest)

	l.Error("request failed")

	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error field, got %s", buf.String())
	}
}

var errTest = errBoom{}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestFields_IgnoresDanglingKey(t *testing.T) {
	f := Fields("a", 1, "b")

	if len(f) != 1 {
		t.Fatalf("expected 1 field, got %d", len(f))
	}
	if f["a"] != 1 {
		t.Errorf("expected a=1, got %v", f["a"])
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	// Must not panic and must not write anywhere.
	l := Nop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}
