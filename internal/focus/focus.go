// Package focus implements the focus engine: keyboard focus target
// resolution, pointer-contents diffing into enter/leave signals, and the
// invariant that some output is always the focused one whenever any
// output exists.
package focus

import (
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// TargetKind is which of the three tiers of the keyboard focus
// resolution order landed on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSessionLock
	TargetExclusiveLayer
	TargetWindow
)

// Target is the resolved keyboard focus.
type Target struct {
	Kind   TargetKind
	Window ids.WindowID // only meaningful when Kind == TargetWindow
}

// Resolve implements the fixed priority order: a session-lock surface
// always wins if one is active; otherwise an
// exclusive-keyboard-interactivity layer surface (if any) wins; otherwise
// the topmost window on the focused output, by sloppy focus.
func Resolve(sessionLocked bool, exclusiveLayerActive bool, topWindow ids.WindowID) Target {
	if sessionLocked {
		return Target{Kind: TargetSessionLock}
	}
	if exclusiveLayerActive {
		return Target{Kind: TargetExclusiveLayer}
	}
	if topWindow == 0 {
		return Target{Kind: TargetNone}
	}
	return Target{Kind: TargetWindow, Window: topWindow}
}

// PointerContents is what the pointer is currently over:
// at most one window, and the output that window (or bare output area)
// belongs to.
type PointerContents struct {
	Window ids.WindowID // 0 = pointer is over no window
	Output string
}

// PointerEventKind is one of the four signals PointerContents diffing can
// produce.
type PointerEventKind int

const (
	WindowPointerEnter PointerEventKind = iota
	WindowPointerLeave
	OutputPointerEnter
	OutputPointerLeave
)

// PointerEvent is one diffed transition, ready to hand to the signal bus.
type PointerEvent struct {
	Kind   PointerEventKind
	Window ids.WindowID
	Output string
}

// DiffPointerContents compares prev to next and returns, in leave-before-
// enter order, the events needed to bring subscribers up to date. Output
// leave/enter only fires when the output itself changes, independent of
// which window (if any) the pointer is over within it.
func DiffPointerContents(prev, next PointerContents) []PointerEvent {
	var events []PointerEvent

	if prev.Window != next.Window {
		if prev.Window != 0 {
			events = append(events, PointerEvent{Kind: WindowPointerLeave, Window: prev.Window})
		}
	}
	if prev.Output != next.Output {
		if prev.Output != "" {
			events = append(events, PointerEvent{Kind: OutputPointerLeave, Output: prev.Output})
		}
		if next.Output != "" {
			events = append(events, PointerEvent{Kind: OutputPointerEnter, Output: next.Output})
		}
	}
	if prev.Window != next.Window && next.Window != 0 {
		events = append(events, PointerEvent{Kind: WindowPointerEnter, Window: next.Window})
	}
	return events
}

// Engine owns the compositor-wide focus state: which output is focused
// ("" only while no output is focused, e.g. before the first output is
// added or after the last one is removed) and the
// last-known pointer contents, so callers only need to feed it raw
// observations and read back diffs.
type Engine struct {
	focusedOutput string
	pointer       PointerContents
}

// NewEngine returns an Engine with no focused output yet.
func NewEngine() *Engine {
	return &Engine{}
}

// FocusedOutput returns the currently focused output's name, or "" if no
// output is focused.
func (e *Engine) FocusedOutput() string {
	return e.focusedOutput
}

// SetFocusedOutput changes the focused output. This should only ever be
// called with a live, enabled output name, or — when
// the previously focused output is destroyed — with a replacement chosen
// by the caller so the invariant "never none while an output exists" is
// preserved; Engine itself does not have enough context to pick that
// replacement.
func (e *Engine) SetFocusedOutput(name string) {
	e.focusedOutput = name
}

// FocusWindow moves w to the top of o's focus stack and focuses o.
func (e *Engine) FocusWindow(o *output.Output, w ids.WindowID) {
	o.PushFocus(w)
	e.focusedOutput = o.Name
}

// UpdatePointer records a new PointerContents observation and returns the
// diffed events against the previous one.
func (e *Engine) UpdatePointer(next PointerContents) []PointerEvent {
	events := DiffPointerContents(e.pointer, next)
	e.pointer = next
	return events
}

// Pointer returns the last recorded pointer contents.
func (e *Engine) Pointer() PointerContents {
	return e.pointer
}
