package core

import (
	"github.com/pinnacle-wm/pinnacle/internal/command"
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
	"github.com/pinnacle-wm/pinnacle/internal/process"
	"github.com/pinnacle-wm/pinnacle/internal/signal"
	"github.com/pinnacle-wm/pinnacle/internal/tag"
	"github.com/pinnacle-wm/pinnacle/internal/window"
)

// This file is the command surface, grouped by entity the way an RPC
// service would group them: Window/Tag/Output/Input/Process/Pinnacle.
// The window-state setters (tags, floating, maximized, fullscreen,
// decoration, minimized) route through applyOrAccumulate, so against a
// still-gated window they accumulate into its WindowRules instead of
// touching the live Window. WindowFocus refuses a gated window with a
// Transient error, and WindowClose destroys it outright.

// applyOrAccumulate runs accumulate against id's pending rules if it is
// still gated, otherwise runs live against its mapped Window. Both
// callbacks are no-ops on whichever branch does not apply.
func (s *State) applyOrAccumulate(id ids.WindowID, accumulate func(*window.WindowRules), live func(*window.Window)) error {
	if u := s.gate.Pending(id); u != nil {
		accumulate(u.Rules)
		return nil
	}
	w := s.windows[id]
	if w == nil {
		return command.Errorf(command.NotFound, "window %d not found", id)
	}
	live(w)
	return nil
}

// --- Window ------------------------------------------------------------

// WindowSetTags replaces a window's tag set.
func (s *State) WindowSetTags(id ids.WindowID, tags []ids.TagID) error {
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { r.Tags = tags; r.TagsAssigned = true },
		func(w *window.Window) {
			w.Tags = tags
			s.refreshOutputName(w, s.outputOfWindow(w))
		},
	)
}

// WindowSetFloating applies set/unset/toggle to a window's Floating mode.
func (s *State) WindowSetFloating(id ids.WindowID, op window.SetOrToggle) error {
	if op == window.Unspecified {
		return command.Errorf(command.InvalidArgument, "set_floating requires set, unset, or toggle")
	}
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { r.FloatingOp = op },
		func(w *window.Window) { (&window.WindowRules{FloatingOp: op}).Apply(w) },
	)
}

// WindowSetMaximized applies set/unset/toggle to a window's Maximized mode.
func (s *State) WindowSetMaximized(id ids.WindowID, op window.SetOrToggle) error {
	if op == window.Unspecified {
		return command.Errorf(command.InvalidArgument, "set_maximized requires set, unset, or toggle")
	}
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { r.MaximizedOp = op },
		func(w *window.Window) { (&window.WindowRules{MaximizedOp: op}).Apply(w) },
	)
}

// WindowSetFullscreen applies set/unset/toggle to a window's Fullscreen mode.
func (s *State) WindowSetFullscreen(id ids.WindowID, op window.SetOrToggle) error {
	if op == window.Unspecified {
		return command.Errorf(command.InvalidArgument, "set_fullscreen requires set, unset, or toggle")
	}
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { r.FullscreenOp = op },
		func(w *window.Window) { (&window.WindowRules{FullscreenOp: op}).Apply(w) },
	)
}

// WindowSetDecorationMode sets client-side vs server-side decorations.
func (s *State) WindowSetDecorationMode(id ids.WindowID, mode window.DecorationMode) error {
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { m := mode; r.Decoration = &m },
		func(w *window.Window) { w.DecorationMode = mode },
	)
}

// WindowSetMinimized minimizes or restores a window.
func (s *State) WindowSetMinimized(id ids.WindowID, minimized bool) error {
	return s.applyOrAccumulate(id,
		func(r *window.WindowRules) { m := minimized; r.Minimized = &m },
		func(w *window.Window) { w.Minimized = minimized },
	)
}

// WindowFocus raises and focuses a mapped window.
func (s *State) WindowFocus(id ids.WindowID) error {
	w := s.windows[id]
	if w == nil {
		return command.Errorf(command.NotFound, "window %d not found", id)
	}
	if !w.Mapped {
		return command.Errorf(command.Transient, "window %d is not mapped yet", id)
	}
	o := s.outputOfWindow(w)
	if o == nil {
		return command.Errorf(command.NotFound, "window %d has no owning output", id)
	}
	s.focus.FocusWindow(o, id)
	s.signals.Publish(signal.KindWindowFocused, signal.WindowFocusPayload{Window: id, Output: o.Name})
	return nil
}

// WindowClose destroys a window outright. Real compositors ask the client
// to close and wait for it to comply; that round trip lives in the
// wayland transport this module treats as an external collaborator
//, so here Close is modeled as immediate destruction.
func (s *State) WindowClose(id ids.WindowID) error {
	if s.windows[id] == nil {
		return command.Errorf(command.NotFound, "window %d not found", id)
	}
	s.DestroyWindow(id)
	return nil
}

// --- Tag -----------------------------------------------------------------

// TagAdd creates len(names) new tags on the given output.
func (s *State) TagAdd(outputName string, names []string) ([]*tag.Tag, error) {
	o := s.outputs[outputName]
	if o == nil {
		return nil, command.Errorf(command.NotFound, "output %q not found", outputName)
	}
	if len(names) == 0 {
		return nil, command.Errorf(command.InvalidArgument, "add requires at least one tag name")
	}
	created := s.tags.Add(&s.alloc, o, names)
	for _, t := range created {
		s.signals.Publish(signal.KindTagActive, signal.TagActivePayload{Tag: t.ID, Active: t.Active})
	}
	return created, nil
}

// TagRemove deletes a tag, orphaning any window that held only it.
func (s *State) TagRemove(id ids.TagID) error {
	t := s.tags.Get(id)
	if t == nil {
		return command.Errorf(command.NotFound, "tag %d not found", id)
	}
	o := s.outputs[t.Output]
	if o == nil {
		return command.Errorf(command.Fatal, "tag %d references missing output %q", id, t.Output)
	}
	s.tags.Remove(o, id, s)
	return nil
}

// TagSetActive sets a tag's active flag directly.
func (s *State) TagSetActive(id ids.TagID, active bool) error {
	t := s.tags.Get(id)
	if t == nil {
		return command.Errorf(command.NotFound, "tag %d not found", id)
	}
	s.tags.SetActive(t, active)
	s.signals.Publish(signal.KindTagActive, signal.TagActivePayload{Tag: id, Active: active})
	return nil
}

// TagSwitchTo exclusively activates one tag on its output.
func (s *State) TagSwitchTo(id ids.TagID) error {
	t := s.tags.Get(id)
	if t == nil {
		return command.Errorf(command.NotFound, "tag %d not found", id)
	}
	o := s.outputs[t.Output]
	if o == nil {
		return command.Errorf(command.Fatal, "tag %d references missing output %q", id, t.Output)
	}
	s.tags.SwitchTo(o, t)
	for _, id := range o.Tags {
		if other := s.tags.Get(id); other != nil {
			s.signals.Publish(signal.KindTagActive, signal.TagActivePayload{Tag: other.ID, Active: other.Active})
		}
	}
	return nil
}

// --- Output --------------------------------------------------------------

// OutputSetScale sets an output's scale factor.
func (s *State) OutputSetScale(name string, scale float64) error {
	o := s.outputs[name]
	if o == nil {
		return command.Errorf(command.NotFound, "output %q not found", name)
	}
	if scale <= 0 {
		return command.Errorf(command.InvalidArgument, "scale must be positive, got %f", scale)
	}
	o.Scale = scale
	return nil
}

// OutputSetTransform sets an output's orientation.
func (s *State) OutputSetTransform(name string, t output.Transform) error {
	o := s.outputs[name]
	if o == nil {
		return command.Errorf(command.NotFound, "output %q not found", name)
	}
	o.Transform = t
	return nil
}

// OutputSetPowered turns an output's display on or off without disabling it.
func (s *State) OutputSetPowered(name string, powered bool) error {
	o := s.outputs[name]
	if o == nil {
		return command.Errorf(command.NotFound, "output %q not found", name)
	}
	o.Powered = powered
	return nil
}

// OutputSetEnabled enables or disables an output outright.
func (s *State) OutputSetEnabled(name string, enabled bool) error {
	o := s.outputs[name]
	if o == nil {
		return command.Errorf(command.NotFound, "output %q not found", name)
	}
	o.Enabled = enabled
	return nil
}

// --- Input -----------------------------------------------------------------

// InputSettings holds compositor-wide input configuration;
// per-device libinput tuning is out of scope since it requires the real
// input-device backend this module excludes.
type InputSettings struct {
	RepeatRateMs  int32
	RepeatDelayMs int32
	XkbLayout     string
}

// InputSetRepeatRate sets the keyboard repeat rate/delay.
func (s *State) InputSetRepeatRate(rateMs, delayMs int32) error {
	if rateMs < 0 || delayMs < 0 {
		return command.Errorf(command.InvalidArgument, "repeat rate and delay must be non-negative")
	}
	s.input.RepeatRateMs = rateMs
	s.input.RepeatDelayMs = delayMs
	return nil
}

// InputSetXkbLayout sets the compositor-wide xkb layout string.
func (s *State) InputSetXkbLayout(layout string) error {
	if layout == "" {
		return command.Errorf(command.InvalidArgument, "xkb layout must not be empty")
	}
	s.input.XkbLayout = layout
	return nil
}

// Input returns the current input settings.
func (s *State) Input() InputSettings { return s.input }

// --- Process ---------------------------------------------------------------

// ProcessSpawn launches commandLine via the process spawner, publishing a
// process-spawned signal on success.
func (s *State) ProcessSpawn(commandLine string) (*process.Handle, error) {
	h, err := s.spawner.Spawn(commandLine)
	if err != nil {
		return nil, command.Errorf(command.Transient, "spawn failed: %v", err)
	}
	s.signals.Publish(signal.KindProcessSpawned, signal.ProcessSpawnedPayload{PID: h.PID, Command: h.Command})
	return h, nil
}

// ProcessShutdown requests a spawned process terminate.
func (s *State) ProcessShutdown(pid int) error {
	if err := s.spawner.Shutdown(pid); err != nil {
		return command.Errorf(command.NotFound, "no tracked process with pid %d", pid)
	}
	return nil
}

// --- Pinnacle --------------------------------------------------------------

// PinnacleQuit marks the state as quitting, which Quitting then reports.
// Nothing in this module stops on that flag: `pinnacle serve` exits only
// on SIGINT/SIGTERM or when its RPC listener stops.
func (s *State) PinnacleQuit() {
	s.quitRequested = true
}

// Quitting reports whether PinnacleQuit has been called.
func (s *State) Quitting() bool { return s.quitRequested }

// PinnacleBackendName reports the active backend, for the
// pinnacle.backend_info RPC.
func (s *State) PinnacleBackendName() string { return s.backendName }

// SetBackendName records which backend (winit/udev) the compositor was
// started with.
func (s *State) SetBackendName(name string) { s.backendName = name }
