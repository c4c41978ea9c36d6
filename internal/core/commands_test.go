package core

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/command"
	"github.com/pinnacle-wm/pinnacle/internal/signal"
	"github.com/pinnacle-wm/pinnacle/internal/window"
)

func TestTagAddRemoveThroughCommandSurface(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")

	created, err := s.TagAdd("DP-1", []string{"1", "2"})
	if err != nil || len(created) != 2 {
		t.Fatalf("expected two tags created, got %v err=%v", created, err)
	}

	if _, err := s.TagAdd("nonexistent", []string{"x"}); err == nil {
		t.Fatal("expected NotFound for unknown output")
	} else if e, ok := command.AsError(err); !ok || e.Kind != command.NotFound {
		t.Fatalf("expected NotFound kind, got %v", err)
	}

	if err := s.TagRemove(created[0].ID); err != nil {
		t.Fatalf("unexpected error removing tag: %v", err)
	}
	if s.Tag(created[0].ID) != nil {
		t.Fatal("expected tag gone after removal")
	}
}

func TestTagSwitchToDeactivatesSiblings(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	created, _ := s.TagAdd("DP-1", []string{"1", "2", "3"})

	if err := s.TagSwitchTo(created[1].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created[1].Active || created[0].Active || created[2].Active {
		t.Fatalf("expected only tag 2 active, got %+v", created)
	}
}

func TestWindowSetFloatingRejectsUnspecified(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	u := s.NewWindow("c", window.SurfaceToplevel)

	err := s.WindowSetFloating(u.Window.ID, window.Unspecified)
	if err == nil {
		t.Fatal("expected an error for Unspecified set_floating")
	}
	if e, ok := command.AsError(err); !ok || e.Kind != command.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestWindowSetFloatingOnMappedWindowAppliesImmediately(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	u := s.NewWindow("c", window.SurfaceToplevel)
	s.release(u.Window.ID)

	if err := s.WindowSetFloating(u.Window.ID, window.Set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Window(u.Window.ID).Mode() != window.Floating {
		t.Fatal("expected window to become floating immediately once mapped")
	}
}

func TestOutputSetScaleValidatesPositive(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	if err := s.OutputSetScale("DP-1", -1); err == nil {
		t.Fatal("expected an error for a non-positive scale")
	}
	if err := s.OutputSetScale("DP-1", 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Output("DP-1").Scale != 2.0 {
		t.Fatal("expected scale applied")
	}
}

func TestProcessSpawnPublishesSignal(t *testing.T) {
	s := New()
	sub := s.Signals().Subscribe(signal.KindProcessSpawned)
	h, err := s.ProcessSpawn("true")
	if err != nil {
		t.Fatalf("unexpected error spawning: %v", err)
	}
	if h.PID == 0 {
		t.Fatal("expected a nonzero pid")
	}
	drained := sub.Drain()
	if len(drained) != 1 || drained[0].Payload.(signal.ProcessSpawnedPayload).PID != h.PID {
		t.Fatalf("expected one process-spawned signal for pid %d, got %+v", h.PID, drained)
	}
}

func TestPinnacleQuit(t *testing.T) {
	s := New()
	if s.Quitting() {
		t.Fatal("must not be quitting initially")
	}
	s.PinnacleQuit()
	if !s.Quitting() {
		t.Fatal("expected Quitting() true after PinnacleQuit")
	}
}
