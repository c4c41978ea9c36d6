package process

import (
	"runtime"
	"testing"
	"time"
)

func TestSpawnAndShutdown(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process-group spawning is linux-specific")
	}
	s := NewSpawner()
	h, err := s.Spawn("sleep 5")
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	if h.PID == 0 {
		t.Fatal("expected a nonzero pid")
	}
	if len(s.Handles()) != 1 {
		t.Fatalf("expected one tracked handle, got %d", len(s.Handles()))
	}

	if err := s.Shutdown(h.PID); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if len(s.Handles()) != 0 {
		t.Fatal("expected handle removed after shutdown")
	}
	time.Sleep(50 * time.Millisecond) // let SIGTERM land before the test process exits
}

func TestHandleRemovedOnNaturalExit(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process-group spawning is linux-specific")
	}
	s := NewSpawner()
	if _, err := s.Spawn("true"); err != nil {
		t.Fatalf("spawn failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(s.Handles()) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the handle for a process that exited on its own to be removed, got %d still tracked", len(s.Handles()))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSpawnRejectsEmptyCommand(t *testing.T) {
	s := NewSpawner()
	if _, err := s.Spawn("   "); err == nil {
		t.Fatal("expected an error spawning an empty command line")
	}
}

func TestShutdownUnknownPIDErrors(t *testing.T) {
	s := NewSpawner()
	if err := s.Shutdown(999999); err == nil {
		t.Fatal("expected an error shutting down an untracked pid")
	}
}
