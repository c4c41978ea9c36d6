package core

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/signal"
	"github.com/pinnacle-wm/pinnacle/internal/window"
)

func TestAddOutputFocusesFirstOutput(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	if s.Focus().FocusedOutput() != "DP-1" {
		t.Fatalf("expected first output to be focused, got %q", s.Focus().FocusedOutput())
	}
	s.AddOutput("DP-2")
	if s.Focus().FocusedOutput() != "DP-1" {
		t.Fatal("adding a second output must not steal focus from the first")
	}
}

func TestRemoveFocusedOutputTransfersFocus(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	s.AddOutput("DP-2")
	s.RemoveOutput("DP-1")
	if s.Focus().FocusedOutput() != "DP-2" {
		t.Fatalf("expected focus to transfer to remaining output, got %q", s.Focus().FocusedOutput())
	}
}

func TestRemoveLastOutputClearsFocus(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	s.RemoveOutput("DP-1")
	if s.Focus().FocusedOutput() != "" {
		t.Fatalf("expected no focused output once all are gone, got %q", s.Focus().FocusedOutput())
	}
}

// TestGateThenMap checks that a new window stays gated while window-rule
// subscribers are connected, and is released, rules applied, only once
// they all finish.
func TestGateThenMap(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	sub1 := s.Signals().Subscribe(signal.KindWindowRule)
	sub2 := s.Signals().Subscribe(signal.KindWindowRule)

	u := s.NewWindow("client-a", window.SurfaceToplevel)
	if u.Window.Mapped {
		t.Fatal("window must not be mapped while rule subscribers are outstanding")
	}

	s.FinishWindowRule(u.Window.ID, sub1.ID, u.RequestID)
	if s.Window(u.Window.ID).Mapped {
		t.Fatal("window must still be gated with one subscriber outstanding")
	}

	s.FinishWindowRule(u.Window.ID, sub2.ID, u.RequestID)
	if !s.Window(u.Window.ID).Mapped {
		t.Fatal("expected window mapped once all subscribers finished")
	}
}

// TestSetFullscreenOnUnmappedWindowViaRules checks that set_fullscreen
// issued against a still-gated window accumulates into its rules instead
// of mutating live state.
func TestSetFullscreenOnUnmappedWindowViaRules(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	u := s.NewWindow("client-a", window.SurfaceToplevel) // no subscribers: immediately ready

	if err := s.WindowSetFullscreen(u.Window.ID, window.Set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Window(u.Window.ID).Mode() == window.Fullscreen {
		t.Fatal("the rule must not be visible on the live window before release")
	}

	s.release(u.Window.ID)
	if s.Window(u.Window.ID).Mode() != window.Fullscreen {
		t.Fatal("expected fullscreen rule applied once the gate released the window")
	}
}

func TestSubscriberDisconnectReleasesGatedWindows(t *testing.T) {
	s := New()
	s.AddOutput("DP-1")
	sub := s.Signals().Subscribe(signal.KindWindowRule)
	u := s.NewWindow("client-a", window.SurfaceToplevel)

	s.DisconnectWindowRuleSubscriber(sub.ID)
	if !s.Window(u.Window.ID).Mapped {
		t.Fatal("expected window released once its only subscriber disconnected")
	}
}

func TestDestroyWindowRemovesFromAllFocusStacks(t *testing.T) {
	s := New()
	o := s.AddOutput("DP-1")
	o.PushFocus(99)
	s.windows[99] = window.New(99, "c", window.SurfaceToplevel)

	s.DestroyWindow(99)
	if o.TopOfFocusStack() == 99 {
		t.Fatal("expected destroyed window removed from focus stack")
	}
	if s.Window(99) != nil {
		t.Fatal("expected destroyed window removed from the registry")
	}
}
