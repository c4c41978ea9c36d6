// Package window implements the Window entity, its layout-mode state
// machine, and the unmapped-window gate.
package window

import (
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// SurfaceKind distinguishes a real Wayland toplevel from a foreign
// (wlr-foreign-toplevel-protocol) handle.
type SurfaceKind int

const (
	SurfaceToplevel SurfaceKind = iota
	SurfaceForeign
)

// DecorationMode selects who draws the window's border/titlebar.
type DecorationMode int

const (
	DecorationClientSide DecorationMode = iota
	DecorationServerSide
)

// Mode is the layout-mode state machine a window can be in.
type Mode int

const (
	Tiled Mode = iota
	Floating
	Maximized
	Fullscreen
)

func (m Mode) String() string {
	switch m {
	case Tiled:
		return "tiled"
	case Floating:
		return "floating"
	case Maximized:
		return "maximized"
	case Fullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// SetOrToggle mirrors the wire enum of the same name: every
// mode-setting command surface operation takes one of these instead of a
// bare bool so "toggle" can be expressed without the caller tracking
// current state.
type SetOrToggle int

const (
	Unspecified SetOrToggle = iota
	Set
	Unset
	Toggle
)

// Window is the compositor's record of one client surface.
type Window struct {
	ID       ids.WindowID
	ClientID string
	Kind     SurfaceKind

	Tags []ids.TagID // ordered set; order is insertion order

	mode         Mode
	previousMode Mode // what unset_maximized/unset_fullscreen returns to

	// TiledGeometry is the last geometry the layout requester assigned
	// this window; it is the Tiled mode's geometry source.
	TiledGeometry output.Rect
	// FloatingGeometry is remembered across mode transitions so that
	// set_floating(false) followed by set_floating(true) restores it.
	FloatingGeometry *output.Rect

	AppID *string
	Title *string

	DecorationMode DecorationMode
	Minimized      bool
	Mapped         bool

	// OutputName is a best-effort cache of the output that owns the first
	// of this window's tags that still exists ("" if none), refreshed by
	// core whenever its tag set changes; reported in state snapshots.
	OutputName string
}

// New constructs a mapped-false Window in its default state. A window's
// initial mode is implementation-defined before rules are applied; Tiled
// is the sensible default the gate starts from.
func New(id ids.WindowID, clientID string, kind SurfaceKind) *Window {
	return &Window{
		ID:             id,
		ClientID:       clientID,
		Kind:           kind,
		mode:           Tiled,
		previousMode:   Tiled,
		DecorationMode: DecorationClientSide,
	}
}

// Mode returns the window's current layout mode.
func (w *Window) Mode() Mode { return w.mode }

// SetFloating implements the Tiled<->Floating edge of the layout-mode
// state machine. Entering Floating from Tiled records the current tiled
// rectangle as the floating geometry if none is set yet; returning to
// Tiled simply switches the mode back (geometry is recomputed by the next
// layout request, which is exactly "re-requests layout").
func (w *Window) SetFloating(floating bool) {
	if floating {
		if w.mode == Tiled {
			if w.FloatingGeometry == nil {
				g := w.TiledGeometry
				w.FloatingGeometry = &g
			}
			w.mode = Floating
		}
		return
	}
	if w.mode == Floating {
		w.mode = Tiled
	}
}

// ToggleFloating inverts Tiled<->Floating.
func (w *Window) ToggleFloating() {
	w.SetFloating(w.mode != Floating)
}

// SetMaximized implements set_maximized/unset_maximized. Entering
// Maximized from any mode other than Fullscreen remembers that mode so
// unset_maximized returns to it. Requesting maximize while already
// fullscreen is a no-op (see DESIGN.md), matching the conservative
// no-op-on-conflicting-state style elsewhere in this state machine.
func (w *Window) SetMaximized(op SetOrToggle) {
	switch op {
	case Set:
		if w.mode == Fullscreen {
			return
		}
		if w.mode != Maximized {
			w.previousMode = w.mode
		}
		w.mode = Maximized
	case Unset:
		if w.mode == Maximized {
			w.mode = w.previousMode
		}
	case Toggle:
		if w.mode == Maximized {
			w.SetMaximized(Unset)
		} else {
			w.SetMaximized(Set)
		}
	}
}

// SetFullscreen implements set_fullscreen/unset_fullscreen, remembering
// the previous mode the same way SetMaximized does.
func (w *Window) SetFullscreen(op SetOrToggle) {
	switch op {
	case Set:
		if w.mode != Fullscreen {
			w.previousMode = w.mode
		}
		w.mode = Fullscreen
	case Unset:
		if w.mode == Fullscreen {
			w.mode = w.previousMode
		}
	case Toggle:
		if w.mode == Fullscreen {
			w.SetFullscreen(Unset)
		} else {
			w.SetFullscreen(Set)
		}
	}
}

// Band groups windows into the three z-order bands: fullscreen windows
// render above normal/floating, which render above tiled. Higher Band
// values render on top.
func (w *Window) Band() int {
	switch w.mode {
	case Fullscreen:
		return 2
	case Floating, Maximized:
		return 1
	default:
		return 0
	}
}

// EffectiveGeometry computes the window's on-screen rectangle for its
// current mode against the given output. insets are the tiled-mode insets (gaps) the layout tree already applied
// to TiledGeometry are NOT re-applied here; `insets` is whatever
// additional static margin (e.g. a reserved strip) the compositor adds on
// top, and is typically zero.
func (w *Window) EffectiveGeometry(o *output.Output, insets output.Insets) output.Rect {
	switch w.mode {
	case Tiled:
		return insets.Apply(w.TiledGeometry)
	case Floating:
		if w.FloatingGeometry == nil {
			return insets.Apply(w.TiledGeometry)
		}
		return w.FloatingGeometry.Clip(o.Location)
	case Maximized:
		return o.WorkArea()
	case Fullscreen:
		return o.Location
	default:
		return output.Rect{}
	}
}

// HasTag reports whether t is one of w's tags.
func (w *Window) HasTag(t ids.TagID) bool {
	for _, id := range w.Tags {
		if id == t {
			return true
		}
	}
	return false
}

// AddTag appends t to w's tags if not already present.
func (w *Window) AddTag(t ids.TagID) {
	if !w.HasTag(t) {
		w.Tags = append(w.Tags, t)
	}
}

// RemoveTag removes t from w's tags, if present.
func (w *Window) RemoveTag(t ids.TagID) {
	for i, id := range w.Tags {
		if id == t {
			w.Tags = append(w.Tags[:i], w.Tags[i+1:]...)
			return
		}
	}
}

// Visible implements invariant 3: mapped AND ≥1 active tag AND output
// enabled and powered.
func Visible(w *Window, anyTagActive bool, o *output.Output) bool {
	return w.Mapped && anyTagActive && o != nil && o.Enabled && o.Powered
}
