package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aliskhannn/math-quiz-bot/internal/config"
)

// TestNewFileWithoutPathDiscards verifies an empty log file yields a no-op logger.
func TestNewFileWithoutPathDiscards(t *testing.T) {
	lg, err := NewFile(&config.Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if lg.Core().Enabled(0) {
		t.Fatalf("expected a no-op logger")
	}
}

// TestNewFileWritesToPath verifies log lines land in the configured file.
func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	lg, err := NewFile(&config.Config{Env: "production", Log: config.Log{File: path}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	lg.Info("quiz session started")
	_ = lg.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "quiz session started") {
		t.Fatalf("expected log line, got %q", data)
	}
}
