package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"DEBUG", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"WARN", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"", log.InfoLevel},
		{"INVALID", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "bodies", 20)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "bodies=20") {
		t.Errorf("warn line missing or without fields: %q", out)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "DEBUG")
	var buf bytes.Buffer
	FromEnv(&buf).Debug("tick")
	if !strings.Contains(buf.String(), "tick") {
		t.Errorf("debug line missing with %s=DEBUG: %q", LevelEnv, buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	w, closeFn, err := OpenFile("")
	if err != nil || w != io.Discard {
		t.Fatalf("OpenFile(\"\") = %v, %v, expected io.Discard", w, err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bounce.log")
	w, closeFn, err = OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	New(w, "info").Info("started")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "started") {
		t.Errorf("log file = %q, expected the info line", data)
	}
}
