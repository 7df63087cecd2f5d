package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "passage.log")
	logger, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("advance past end", "index", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "advance past end") || !strings.Contains(string(data), "index=3") {
		t.Fatalf("unexpected log contents %q", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
