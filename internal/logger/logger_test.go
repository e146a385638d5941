// ABOUTME: Tests for the slog fanout setup.
// ABOUTME: Checks level routing between stderr and the JSON log file.
package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitFansOut(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "fittrack.log")
	closeFn := Init(Options{Level: slog.LevelInfo, File: path, Stderr: &stderr})

	slog.Info("day completed", "day", 3)
	slog.Warn("malformed document", "kind", "diet")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if strings.Contains(stderr.String(), "day completed") {
		t.Error("info should not reach stderr without verbose")
	}
	if !strings.Contains(stderr.String(), "malformed document") {
		t.Errorf("warning missing from stderr: %q", stderr.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "day completed" || entry["day"] != float64(3) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestInitVerbose(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stderr bytes.Buffer
	closeFn := Init(Options{Level: slog.LevelDebug, Verbose: true, Stderr: &stderr})
	defer closeFn()

	slog.Debug("loading state")
	if !strings.Contains(stderr.String(), "loading state") {
		t.Errorf("debug missing from verbose stderr: %q", stderr.String())
	}
}
