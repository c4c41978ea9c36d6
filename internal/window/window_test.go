package window

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/output"
)

func TestFloatingRoundTripRestoresTiledMode(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	w.TiledGeometry = output.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	w.SetFloating(true)
	if w.Mode() != Floating {
		t.Fatalf("expected Floating, got %s", w.Mode())
	}
	if w.FloatingGeometry == nil || *w.FloatingGeometry != w.TiledGeometry {
		t.Fatalf("expected floating geometry seeded from tiled geometry, got %+v", w.FloatingGeometry)
	}

	w.SetFloating(false)
	if w.Mode() != Tiled {
		t.Fatalf("expected Tiled after unfloat, got %s", w.Mode())
	}
}

func TestMaximizeRemembersPreviousModeAcrossFloating(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	w.SetFloating(true)

	w.SetMaximized(Set)
	if w.Mode() != Maximized {
		t.Fatalf("expected Maximized, got %s", w.Mode())
	}
	w.SetMaximized(Unset)
	if w.Mode() != Floating {
		t.Fatalf("expected Floating restored after unmaximize, got %s", w.Mode())
	}
}

func TestFullscreenSetIsNoOpOnMaximizeAttempt(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	w.SetFullscreen(Set)
	w.SetMaximized(Set)
	if w.Mode() != Fullscreen {
		t.Fatalf("expected set_maximized while fullscreen to be a no-op, got %s", w.Mode())
	}
}

func TestFullscreenToggleRestoresTiled(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	w.SetFullscreen(Toggle)
	if w.Mode() != Fullscreen {
		t.Fatalf("expected Fullscreen after first toggle, got %s", w.Mode())
	}
	w.SetFullscreen(Toggle)
	if w.Mode() != Tiled {
		t.Fatalf("expected Tiled after second toggle, got %s", w.Mode())
	}
}

func TestEffectiveGeometryPerMode(t *testing.T) {
	o := output.New("DP-1")
	o.Location = output.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	o.ExclusiveInsets = output.Insets{Top: 30}

	w := New(1, "client-a", SurfaceToplevel)
	w.TiledGeometry = output.Rect{X: 10, Y: 10, Width: 500, Height: 500}

	if g := w.EffectiveGeometry(o, output.Insets{}); g != w.TiledGeometry {
		t.Fatalf("tiled geometry mismatch: %+v", g)
	}

	w.SetMaximized(Set)
	if g := w.EffectiveGeometry(o, output.Insets{}); g.Y != 30 || g.Height != 1050 {
		t.Fatalf("expected maximized geometry to equal work area, got %+v", g)
	}

	w.SetMaximized(Unset)
	w.SetFullscreen(Set)
	if g := w.EffectiveGeometry(o, output.Insets{}); g != o.Location {
		t.Fatalf("expected fullscreen geometry to equal output location, got %+v", g)
	}
}

func TestBandOrdering(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	if w.Band() != 0 {
		t.Fatalf("expected tiled band 0, got %d", w.Band())
	}
	w.SetFloating(true)
	if w.Band() != 1 {
		t.Fatalf("expected floating band 1, got %d", w.Band())
	}
	w.SetFullscreen(Set)
	if w.Band() != 2 {
		t.Fatalf("expected fullscreen band 2, got %d", w.Band())
	}
}

func TestAddRemoveTag(t *testing.T) {
	w := New(1, "client-a", SurfaceToplevel)
	w.AddTag(5)
	w.AddTag(5)
	if len(w.Tags) != 1 {
		t.Fatalf("expected AddTag to be idempotent, got %v", w.Tags)
	}
	w.RemoveTag(5)
	if len(w.Tags) != 0 {
		t.Fatalf("expected tag removed, got %v", w.Tags)
	}
}
