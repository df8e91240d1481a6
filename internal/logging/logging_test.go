package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		level   string
		wantLvl slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			lvl, err := ParseLevel(tc.level)
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tc.level, err)
			}
			if lvl != tc.wantLvl {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.level, lvl, tc.wantLvl)
			}
		})
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("want error for unknown log level")
	}
}

func TestNew_JSONToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "info", Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("excluded pair", "file", "a.mp3", "reason", "empty text")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d records, want 1 (debug filtered): %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "excluded pair" || rec["reason"] != "empty text" {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Format: "text", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Info("dataset ready", "train", 9)
	if !strings.Contains(buf.String(), "msg=\"dataset ready\" train=9") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ttscorpus.log")

	var console bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", File: path, Console: &console})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("exported clip", "wav", "a.wav")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "exported clip") {
		t.Errorf("log file = %q", data)
	}
	if !bytes.Equal(data, console.Bytes()) {
		t.Error("console and file received different records")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("want error for unknown level")
	}
	if _, _, err := New(Options{Format: "xml", Console: &bytes.Buffer{}}); err == nil {
		t.Error("want error for unknown format")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("nop logger should not be enabled at error level")
	}
}
