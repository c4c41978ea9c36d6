// Package core owns the single compositor-wide State: the entity
// registry, window/output/tag maps, and the focus/bind/signal/layout
// engines, composed as one struct holding every sub-manager the way a
// connection manager composes its connection maps. State is not safe for
// concurrent use: every call into it must be serialized by its owner. The
// RPC listener in internal/rpcserver serves each connection on its own
// goroutine, and cmd's request handler takes one lock around each request
// so those goroutines reach State one request at a time.
package core

import (
	"fmt"

	"github.com/pinnacle-wm/pinnacle/internal/bind"
	"github.com/pinnacle-wm/pinnacle/internal/focus"
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/layout"
	"github.com/pinnacle-wm/pinnacle/internal/logger"
	"github.com/pinnacle-wm/pinnacle/internal/output"
	"github.com/pinnacle-wm/pinnacle/internal/process"
	"github.com/pinnacle-wm/pinnacle/internal/signal"
	"github.com/pinnacle-wm/pinnacle/internal/tag"
	"github.com/pinnacle-wm/pinnacle/internal/window"
)

// State is the whole of the compositor's policy state.
type State struct {
	alloc   ids.Registry
	outputs map[string]*output.Output
	windows map[ids.WindowID]*window.Window

	gate    *window.Gate
	tags    *tag.Model
	focus   *focus.Engine
	binds   *bind.Engine
	signals *signal.Bus
	layouts *layout.Requester
	spawner *process.Spawner

	input         InputSettings
	quitRequested bool
	backendName   string
}

// New returns an empty State ready to register outputs and accept
// windows.
func New() *State {
	s := &State{
		outputs: make(map[string]*output.Output),
		windows: make(map[ids.WindowID]*window.Window),
		gate:    window.NewGate(),
		tags:    tag.NewModel(),
		focus:   focus.NewEngine(),
		binds:   bind.NewEngine(),
		signals: signal.NewBus(),
		spawner: process.NewSpawner(),
	}
	s.layouts = layout.NewRequester(&s.alloc)
	logger.SetDiagnosticsNotifier(func(level, message string) {
		s.signals.Publish(signal.KindDiagnostic, signal.DiagnosticPayload{Level: level, Message: message})
	})
	return s
}

// Signals exposes the signal bus so the RPC layer can subscribe/drain it.
func (s *State) Signals() *signal.Bus { return s.signals }

// Binds exposes the bind engine so the RPC/input layer can register binds
// and deliver press/release edges.
func (s *State) Binds() *bind.Engine { return s.binds }

// Layouts exposes the layout requester.
func (s *State) Layouts() *layout.Requester { return s.layouts }

// Focus exposes the focus engine.
func (s *State) Focus() *focus.Engine { return s.focus }

// Tags exposes the tag model, e.g. so a snapshot RPC handler can read
// which tags are active on an output.
func (s *State) Tags() *tag.Model { return s.tags }

// AllOutputs returns every registered output, in no particular order.
func (s *State) AllOutputs() []*output.Output {
	out := make([]*output.Output, 0, len(s.outputs))
	for _, o := range s.outputs {
		out = append(out, o)
	}
	return out
}

// --- tag.WindowSet implementation -----------------------------------
//
// core bridges window and tag without either package importing the
// other, to avoid a cyclic import between them.

func (s *State) TagsOf(w ids.WindowID) []ids.TagID {
	if win := s.windows[w]; win != nil {
		return win.Tags
	}
	return nil
}

func (s *State) SetTagsOf(w ids.WindowID, tags []ids.TagID) {
	if win := s.windows[w]; win != nil {
		win.Tags = tags
		s.refreshOutputName(win, s.outputOfWindow(win))
	}
}

func (s *State) AllWindows() []ids.WindowID {
	out := make([]ids.WindowID, 0, len(s.windows))
	for id := range s.windows {
		out = append(out, id)
	}
	return out
}

// --- entity lookups ---------------------------------------------------

// Window returns the window with id, or nil. Lookups by a stale or
// unknown ID return nil/NotFound, never a panic.
func (s *State) Window(id ids.WindowID) *window.Window { return s.windows[id] }

// Output returns the output named name, or nil.
func (s *State) Output(name string) *output.Output { return s.outputs[name] }

// Tag returns the tag with id, or nil.
func (s *State) Tag(id ids.TagID) *tag.Tag { return s.tags.Get(id) }

// AddOutput registers a new output and, if it is the first one, focuses
// it — focused output is never "none" once any output exists.
func (s *State) AddOutput(name string) *output.Output {
	o := output.New(name)
	s.outputs[name] = o
	if s.focus.FocusedOutput() == "" {
		s.focus.SetFocusedOutput(name)
	}
	s.signals.Publish(signal.KindOutputConnect, signal.OutputConnectPayload{Output: name})
	return o
}

// RemoveOutput drops an output. If it was the focused output, focus
// transfers to an arbitrary remaining output (never "none" while any
// output exists).
func (s *State) RemoveOutput(name string) {
	if _, ok := s.outputs[name]; !ok {
		return
	}
	delete(s.outputs, name)
	s.signals.Publish(signal.KindOutputDisconnect, signal.OutputConnectPayload{Output: name})

	if s.focus.FocusedOutput() != name {
		return
	}
	for other := range s.outputs {
		s.focus.SetFocusedOutput(other)
		return
	}
	s.focus.SetFocusedOutput("")
}

// NewWindow begins gating a freshly-created surface: it is
// registered in the window map immediately (so ID lookups succeed) but
// stays unmapped until the gate releases it or the client commits a
// buffer (see CommitSurface).
func (s *State) NewWindow(clientID string, kind window.SurfaceKind) *window.UnmappedWindow {
	w := window.New(s.alloc.NewWindowID(), clientID, kind)
	s.windows[w.ID] = w

	subs := s.signals.SubscriberIDs(signal.KindWindowRule)
	u := s.gate.Begin(&s.alloc, w, subs)
	s.signals.Publish(signal.KindWindowRule, signal.WindowRulePayload{Window: w.ID, RequestID: u.RequestID})
	return u
}

// FinishWindowRule records that subscriberID replied Finished for
// windowID's current request-id, releasing the window (applying its
// accumulated rules) once every subscriber has done so.
func (s *State) FinishWindowRule(windowID ids.WindowID, subscriberID int, requestID ids.RequestID) {
	if s.gate.Finish(windowID, subscriberID, requestID) {
		s.release(windowID)
	}
}

// DisconnectWindowRuleSubscriber treats subscriberID as Finished for
// every window still gated on it — a dropped subscription can never
// block a window forever — and releases any window that becomes fully
// ready as a result.
func (s *State) DisconnectWindowRuleSubscriber(subscriberID int) {
	s.signals.Disconnect(signal.KindWindowRule, subscriberID)
	for _, id := range s.gate.SubscriberDisconnected(subscriberID) {
		s.release(id)
	}
}

// CommitSurface is called when the client's surface actually commits a
// buffer. The first commit maps the window unconditionally; if that
// happens while window-rule subscribers are still outstanding, it is
// honored but logged as a protocol violation.
func (s *State) CommitSurface(windowID ids.WindowID) {
	u, premature := s.gate.Commit(windowID)
	if u == nil {
		return // already mapped, or unknown window
	}
	if premature {
		logger.Warnf("window %d committed before all rule subscribers finished", windowID)
	}
	s.mapWindow(u)
}

func (s *State) release(windowID ids.WindowID) {
	u := s.gate.Take(windowID)
	if u == nil {
		return
	}
	s.mapWindow(u)
}

func (s *State) mapWindow(u *window.UnmappedWindow) {
	u.Rules.Apply(u.Window)
	u.Window.Mapped = true
	o := s.outputOfWindow(u.Window)
	s.refreshOutputName(u.Window, o)
	if o != nil {
		s.focus.FocusWindow(o, u.Window.ID)
		s.signals.Publish(signal.KindWindowFocused, signal.WindowFocusPayload{Window: u.Window.ID, Output: o.Name})
	}
}

// refreshOutputName updates w's OutputName cache to match o (nil clears
// it), called anywhere w's tag set changes.
func (s *State) refreshOutputName(w *window.Window, o *output.Output) {
	if o == nil {
		w.OutputName = ""
		return
	}
	w.OutputName = o.Name
}

// outputOfWindow returns the first output owning any of w's tags, or nil.
func (s *State) outputOfWindow(w *window.Window) *output.Output {
	for _, t := range w.Tags {
		tg := s.tags.Get(t)
		if tg == nil {
			continue
		}
		if o := s.outputs[tg.Output]; o != nil {
			return o
		}
	}
	return nil
}

// DestroyWindow removes a window entirely, releasing it from the gate (if
// still gated) and every focus stack it appears on.
func (s *State) DestroyWindow(id ids.WindowID) {
	s.gate.Release(id)
	delete(s.windows, id)
	for _, o := range s.outputs {
		o.RemoveFromFocusStack(id)
	}
}

// String renders a short diagnostic summary of output and window counts.
func (s *State) String() string {
	return fmt.Sprintf("State{outputs=%d windows=%d}", len(s.outputs), len(s.windows))
}
