package genlog

import (
	"path/filepath"
	"testing"
)

func TestNewNopForLevelNone(t *testing.T) {
	log, err := New(Options{Level: LevelNone})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("should be discarded")
}

func TestNewWritesToDestinationFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.log")
	log, err := New(Options{Level: LevelDebug, Destination: dest, JSON: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello")
	log.Sync()
}

func TestNewRejectsUnwritableDestination(t *testing.T) {
	if _, err := New(Options{Level: LevelInfo, Destination: "/nonexistent-dir/out.log"}); err == nil {
		t.Error("expected an error for an unwritable destination")
	}
}
