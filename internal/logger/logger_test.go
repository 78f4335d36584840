package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFile_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	log, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	log.Debug("fetch started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"fetch started"`) {
		t.Errorf("expected debug entry in log, got %q", data)
	}
}

func TestNamed_NilBase(t *testing.T) {
	if Named(nil, "tui") == nil {
		t.Fatal("expected a no-op logger for nil base")
	}
}
