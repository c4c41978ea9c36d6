// Package output implements the Output entity: a display connector with
// modes, scale, transform, logical placement, and the per-output
// tag/focus-stack bookkeeping that the tag and focus packages hang off
// of. The struct shapes mirror a typical monitor descriptor
// (position/size/bounds) plus a wlr-output-management-style Transform
// enum, stripped of any real Wayland wire protocol.
package output

import "github.com/pinnacle-wm/pinnacle/internal/ids"

// Transform mirrors the eight orientations an output can be presented in.
type Transform int32

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

func (t Transform) String() string {
	switch t {
	case TransformNormal:
		return "normal"
	case Transform90:
		return "90"
	case Transform180:
		return "180"
	case Transform270:
		return "270"
	case TransformFlipped:
		return "flipped"
	case TransformFlipped90:
		return "flipped-90"
	case TransformFlipped180:
		return "flipped-180"
	case TransformFlipped270:
		return "flipped-270"
	default:
		return "unknown"
	}
}

// Mode is a display mode an output can be driven at.
type Mode struct {
	Width     int32
	Height    int32
	RefreshMHz int32
	Preferred bool
}

// Modeline carries DRM CVT-style timing fields, supplemented
// from original_source/src/backend/udev/drm/util.rs. The compositor core
// stores these verbatim; real DRM programming is out of scope.
type Modeline struct {
	ClockMHz float64
	HDisplay int32
	HSyncStart int32
	HSyncEnd   int32
	HTotal     int32
	VDisplay   int32
	VSyncStart int32
	VSyncEnd   int32
	VTotal     int32
	VRefreshHz float64
	HSyncPositive bool
	VSyncPositive bool
}

// Rect is a logical-space rectangle shared by the output, window, and
// layout packages.
type Rect struct {
	X, Y, Width, Height int32
}

// Contains reports whether the point (x, y) lies within r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Clip constrains r to fit entirely inside bound, preserving size where
// possible and otherwise shrinking it. Used when a floating window's
// geometry must be clipped to the union of its tags' output.
func (r Rect) Clip(bound Rect) Rect {
	out := r
	if out.Width > bound.Width {
		out.Width = bound.Width
	}
	if out.Height > bound.Height {
		out.Height = bound.Height
	}
	if out.X < bound.X {
		out.X = bound.X
	}
	if out.Y < bound.Y {
		out.Y = bound.Y
	}
	if out.X+out.Width > bound.X+bound.Width {
		out.X = bound.X + bound.Width - out.Width
	}
	if out.Y+out.Height > bound.Y+bound.Height {
		out.Y = bound.Y + bound.Height - out.Height
	}
	return out
}

// Insets subtracts four margins from a rectangle, used to compute the
// tiled mode's effective geometry and a maximized window's
// work area (output geometry minus layer-surface exclusive zones).
type Insets struct {
	Top, Bottom, Left, Right int32
}

// Apply returns r shrunk by ins on each side.
func (ins Insets) Apply(r Rect) Rect {
	return Rect{
		X:      r.X + ins.Left,
		Y:      r.Y + ins.Top,
		Width:  max32(0, r.Width-ins.Left-ins.Right),
		Height: max32(0, r.Height-ins.Top-ins.Bottom),
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Output is a display connector. It owns no tag/window maps
// directly — those live in the tag and core packages so that Output stays
// a plain data record, holding only IDs for cross-links. Tags and
// FocusStack are IDs, not pointers.
type Output struct {
	Name            string
	Modes           []Mode
	CurrentMode     Mode
	Modeline        *Modeline
	Scale           float64
	Transform       Transform
	Location        Rect // X/Y are the logical position; Width/Height the logical size
	Powered         bool
	Enabled         bool
	ExclusiveInsets Insets // accumulated exclusive zones from layer-shell surfaces

	Tags       []ids.TagID // insertion order tie-break rule
	FocusStack []ids.WindowID
}

// WorkArea returns the output's logical geometry minus its layer-surface
// exclusive zones — the geometry source for Maximized windows.
func (o *Output) WorkArea() Rect {
	return o.ExclusiveInsets.Apply(o.Location)
}

// New constructs a disabled, unpowered Output with no modes, matching the
// state of a connector the driver has announced but not yet configured.
func New(name string) *Output {
	return &Output{
		Name:      name,
		Scale:     1.0,
		Transform: TransformNormal,
	}
}

// PushFocus moves w to the end of the focus stack (most-recently-focused),
// inserting it if absent: on explicit focus, the window moves to the end.
func (o *Output) PushFocus(w ids.WindowID) {
	o.RemoveFromFocusStack(w)
	o.FocusStack = append(o.FocusStack, w)
}

// RemoveFromFocusStack removes w from the stack if present; a no-op
// otherwise. Used both on destruction (invariant 5) and before PushFocus.
func (o *Output) RemoveFromFocusStack(w ids.WindowID) {
	for i, id := range o.FocusStack {
		if id == w {
			o.FocusStack = append(o.FocusStack[:i], o.FocusStack[i+1:]...)
			return
		}
	}
}

// TopOfFocusStack returns the currently-focused window on this output, or
// 0 if the stack is empty.
func (o *Output) TopOfFocusStack() ids.WindowID {
	if len(o.FocusStack) == 0 {
		return 0
	}
	return o.FocusStack[len(o.FocusStack)-1]
}

// HasTag reports whether t belongs to this output.
func (o *Output) HasTag(t ids.TagID) bool {
	for _, id := range o.Tags {
		if id == t {
			return true
		}
	}
	return false
}
