package window

import "github.com/pinnacle-wm/pinnacle/internal/ids"

// WindowRules accumulates the mutations issued against a window before it
// is mapped: every Window/Tag command surface call
// targeting an UnmappedWindow writes into this struct instead of touching
// live state, and Apply plays them back once the window becomes real.
type WindowRules struct {
	Tags         []ids.TagID
	TagsAssigned bool

	FloatingOp   SetOrToggle
	MaximizedOp  SetOrToggle
	FullscreenOp SetOrToggle

	Decoration *DecorationMode
	Minimized  *bool
}

// Apply plays the accumulated rules back onto w, in the fixed order
// tags -> floating -> maximized -> fullscreen -> decoration -> minimized.
// The order matters only for FloatingOp vs MaximizedOp/FullscreenOp, since
// those are mutually exclusive state-machine edges; rules
// are applied in call order within each field already by accumulation, so
// this is simply "last write per field wins, fields apply in a fixed
// sequence".
func (r *WindowRules) Apply(w *Window) {
	if r.TagsAssigned {
		w.Tags = r.Tags
	}
	if r.FloatingOp != Unspecified {
		switch r.FloatingOp {
		case Set:
			w.SetFloating(true)
		case Unset:
			w.SetFloating(false)
		case Toggle:
			w.ToggleFloating()
		}
	}
	if r.MaximizedOp != Unspecified {
		w.SetMaximized(r.MaximizedOp)
	}
	if r.FullscreenOp != Unspecified {
		w.SetFullscreen(r.FullscreenOp)
	}
	if r.Decoration != nil {
		w.DecorationMode = *r.Decoration
	}
	if r.Minimized != nil {
		w.Minimized = *r.Minimized
	}
}

// UnmappedWindow pairs a not-yet-mapped Window with the rules accumulated
// against it and the request-id the gate handed out for it.
type UnmappedWindow struct {
	Window    *Window
	Rules     *WindowRules
	RequestID ids.RequestID
}

type pendingEntry struct {
	unmapped *UnmappedWindow
	awaiting map[int]struct{}
}

// Gate implements the unmapped-window gate: when a new
// surface appears, it is held back from becoming visible until every
// connected window-rule subscriber has either replied Finished for its
// request-id or disconnected. Commands against the surface in the
// meantime accumulate into its WindowRules rather than applying live.
type Gate struct {
	pending map[ids.WindowID]*pendingEntry
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{pending: make(map[ids.WindowID]*pendingEntry)}
}

// Begin registers w as newly unmapped, generates its request-id, and
// records the set of subscriber IDs that must each report Finished before
// the window may be mapped. An empty subscriberIDs set means there are no
// window-rule subscribers connected at all, so the window is immediately
// ready — Begin returns the UnmappedWindow either way, and the caller
// should check Ready(w.ID) after calling it.
func (g *Gate) Begin(alloc *ids.Registry, w *Window, subscriberIDs []int) *UnmappedWindow {
	u := &UnmappedWindow{
		Window:    w,
		Rules:     &WindowRules{},
		RequestID: alloc.NewRequestID(),
	}
	awaiting := make(map[int]struct{}, len(subscriberIDs))
	for _, id := range subscriberIDs {
		awaiting[id] = struct{}{}
	}
	g.pending[w.ID] = &pendingEntry{unmapped: u, awaiting: awaiting}
	return u
}

// Pending returns the UnmappedWindow still gated for id, or nil if id has
// already been released (or was never gated).
func (g *Gate) Pending(id ids.WindowID) *UnmappedWindow {
	if e := g.pending[id]; e != nil {
		return e.unmapped
	}
	return nil
}

// Ready reports whether every subscriber gating id has finished (or the
// window was never gated in the first place).
func (g *Gate) Ready(id ids.WindowID) bool {
	e := g.pending[id]
	return e == nil || len(e.awaiting) == 0
}

// Finish records that subscriberID has replied Finished for windowID's
// current request-id. A stale requestID (from a prior generation of the
// gate, e.g. after the window was released and re-gated) is ignored. The
// return value reports whether the window is now fully released.
func (g *Gate) Finish(windowID ids.WindowID, subscriberID int, requestID ids.RequestID) bool {
	e := g.pending[windowID]
	if e == nil {
		return true
	}
	if e.unmapped.RequestID != requestID {
		return false
	}
	delete(e.awaiting, subscriberID)
	return len(e.awaiting) == 0
}

// SubscriberDisconnected treats subscriberID as Finished for every window
// it was still gating — a dropped subscription can never block a window
// forever. It returns the IDs of windows that became fully released as
// a result.
func (g *Gate) SubscriberDisconnected(subscriberID int) []ids.WindowID {
	var released []ids.WindowID
	for id, e := range g.pending {
		if _, ok := e.awaiting[subscriberID]; !ok {
			continue
		}
		delete(e.awaiting, subscriberID)
		if len(e.awaiting) == 0 {
			released = append(released, id)
		}
	}
	return released
}

// Commit is called when the client's surface actually commits a buffer.
// It releases the gate unconditionally — first commit maps the window
// regardless of subscriber state — and reports premature
// as true when that happened while subscribers were still outstanding, so
// the caller can log the protocol violation without refusing the map.
func (g *Gate) Commit(windowID ids.WindowID) (u *UnmappedWindow, premature bool) {
	e := g.pending[windowID]
	if e == nil {
		return nil, false
	}
	delete(g.pending, windowID)
	return e.unmapped, len(e.awaiting) != 0
}

// Release removes windowID from the gate without regard to its state,
// e.g. when the surface is destroyed before ever committing.
func (g *Gate) Release(windowID ids.WindowID) {
	delete(g.pending, windowID)
}

// Take removes and returns windowID's UnmappedWindow once Finish has
// reported it ready (Ready(windowID) == true); the caller uses this to
// apply its accumulated rules and mark it mapped. Returns nil if windowID
// was not pending.
func (g *Gate) Take(windowID ids.WindowID) *UnmappedWindow {
	e := g.pending[windowID]
	if e == nil {
		return nil
	}
	delete(g.pending, windowID)
	return e.unmapped
}
