package window

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/ids"
)

// TestGateThenMap checks that a window appears while two rule subscribers
// are connected stays gated until both report Finished, and commands
// issued in the meantime land in its rules rather than live state.
func TestGateThenMap(t *testing.T) {
	var alloc ids.Registry
	g := NewGate()
	w := New(alloc.NewWindowID(), "client-a", SurfaceToplevel)

	u := g.Begin(&alloc, w, []int{1, 2})
	if g.Ready(w.ID) {
		t.Fatal("expected window to be gated while subscribers are outstanding")
	}

	u.Rules.FullscreenOp = Set

	if g.Finish(w.ID, 1, u.RequestID) {
		t.Fatal("should not be ready after only one of two subscribers finished")
	}
	if !g.Finish(w.ID, 2, u.RequestID) {
		t.Fatal("expected window ready once all subscribers finished")
	}

	u.Rules.Apply(w)
	if w.Mode() != Fullscreen {
		t.Fatalf("expected accumulated fullscreen rule applied on release, got %s", w.Mode())
	}
}

// TestSetFullscreenOnUnmappedWindowViaRules checks that mutating commands
// against an UnmappedWindow accumulate into WindowRules and are only
// visible once Apply runs, not immediately.
func TestSetFullscreenOnUnmappedWindowViaRules(t *testing.T) {
	var alloc ids.Registry
	g := NewGate()
	w := New(alloc.NewWindowID(), "client-a", SurfaceToplevel)
	u := g.Begin(&alloc, w, nil)

	if !g.Ready(w.ID) {
		t.Fatal("expected window with no subscribers to be immediately ready")
	}

	u.Rules.FullscreenOp = Set
	if w.Mode() == Fullscreen {
		t.Fatal("rule must not apply to the live window before release")
	}

	u.Rules.Apply(w)
	if w.Mode() != Fullscreen {
		t.Fatalf("expected fullscreen after applying accumulated rules, got %s", w.Mode())
	}
}

func TestSubscriberDisconnectReleasesWindow(t *testing.T) {
	var alloc ids.Registry
	g := NewGate()
	w := New(alloc.NewWindowID(), "client-a", SurfaceToplevel)
	g.Begin(&alloc, w, []int{1, 2})

	released := g.SubscriberDisconnected(1)
	if len(released) != 0 {
		t.Fatal("should not be released with subscriber 2 still outstanding")
	}
	released = g.SubscriberDisconnected(2)
	if len(released) != 1 || released[0] != w.ID {
		t.Fatalf("expected window released after both subscribers gone, got %v", released)
	}
	if !g.Ready(w.ID) {
		t.Fatal("expected gate to consider the window ready")
	}
}

func TestCommitBeforeFinishedIsHonoredButFlaggedPremature(t *testing.T) {
	var alloc ids.Registry
	g := NewGate()
	w := New(alloc.NewWindowID(), "client-a", SurfaceToplevel)
	g.Begin(&alloc, w, []int{1})

	u, premature := g.Commit(w.ID)
	if u == nil {
		t.Fatal("expected commit to return the unmapped window")
	}
	if !premature {
		t.Fatal("expected premature=true since subscriber 1 never finished")
	}
	if g.Pending(w.ID) != nil {
		t.Fatal("expected gate entry removed after commit")
	}
}

func TestFinishIgnoresStaleRequestID(t *testing.T) {
	var alloc ids.Registry
	g := NewGate()
	w := New(alloc.NewWindowID(), "client-a", SurfaceToplevel)
	u := g.Begin(&alloc, w, []int{1})

	if g.Finish(w.ID, 1, u.RequestID+1) {
		t.Fatal("a stale request-id must not release the gate")
	}
	if g.Ready(w.ID) {
		t.Fatal("window should still be gated")
	}
}
