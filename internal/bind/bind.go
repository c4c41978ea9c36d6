// Package bind implements the bind engine: keybind registration,
// modifier matching, the bind-layer stack (not to be confused with
// wlr-layer-shell layers), and press/release edge delivery with
// suppression symmetry.
package bind

import "github.com/pinnacle-wm/pinnacle/internal/ids"

// ModMask is a keybind's modifier requirement. Each field is tri-state:
// nil means "don't care", true means "must be held", false means "must
// not be held".
type ModMask struct {
	Shift     *bool
	Ctrl      *bool
	Alt       *bool
	Super     *bool
	IsoLevel3 *bool // AltGr-style third-level shift
	IsoLevel5 *bool // fifth-level shift
}

// ModState is the actual modifier state of one input event.
type ModState struct {
	Shift, Ctrl, Alt, Super, IsoLevel3, IsoLevel5 bool
}

func matchField(want *bool, have bool) bool {
	return want == nil || *want == have
}

// Matches reports whether mask accepts the given concrete modifier state.
func (mask ModMask) Matches(state ModState) bool {
	return matchField(mask.Shift, state.Shift) &&
		matchField(mask.Ctrl, state.Ctrl) &&
		matchField(mask.Alt, state.Alt) &&
		matchField(mask.Super, state.Super) &&
		matchField(mask.IsoLevel3, state.IsoLevel3) &&
		matchField(mask.IsoLevel5, state.IsoLevel5)
}

// Bind is one registered keybind.
type Bind struct {
	ID    ids.BindID
	Mods  ModMask
	Key   uint32 // keysym or button code; opaque to this package
	Layer string // "" is the base layer
}

// LayerStack is the stack of bind layers a session can push/pop through:
// entering a layer shadows the base layer's binds with that layer's own,
// until the previous layer (or the base layer outright) is restored.
type LayerStack struct {
	stack []string
}

// Current returns the active layer name, "" for the base layer.
func (s *LayerStack) Current() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

// EnterLayer pushes name to the top of the active-layer stack, raising it
// if it is already present rather than stacking a duplicate entry.
func (s *LayerStack) EnterLayer(name string) {
	kept := s.stack[:0]
	for _, l := range s.stack {
		if l != name {
			kept = append(kept, l)
		}
	}
	s.stack = append(kept, name)
}

// EnterPreviousLayer pops the active layer, returning to whatever was
// active before it (the base layer if the stack is now empty).
func (s *LayerStack) EnterPreviousLayer() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// EnterLayerNone clears the entire stack, returning directly to the base
// layer regardless of depth.
func (s *LayerStack) EnterLayerNone() {
	s.stack = nil
}

// Engine owns registered binds and delivers press/release edges.
type Engine struct {
	binds  []*Bind // registration order; also delivery order for ties
	layers LayerStack

	// active maps a currently-pressed key to the binds that matched on
	// its press, so the matching release is delivered (and suppressed)
	// symmetrically even if modifiers changed in between.
	active map[uint32][]*Bind
}

// NewEngine returns an empty bind engine.
func NewEngine() *Engine {
	return &Engine{active: make(map[uint32][]*Bind)}
}

// Layers returns the engine's layer stack.
func (e *Engine) Layers() *LayerStack { return &e.layers }

// Register adds b to the engine in registration order.
func (e *Engine) Register(b *Bind) {
	e.binds = append(e.binds, b)
}

// Unregister removes the bind with the given ID, if present.
func (e *Engine) Unregister(id ids.BindID) {
	for i, b := range e.binds {
		if b.ID == id {
			e.binds = append(e.binds[:i], e.binds[i+1:]...)
			return
		}
	}
}

// Press delivers a key/button press. It returns every registered bind on
// the currently active layer whose ModMask matches state, in registration
// order, and whether the event should be suppressed from further
// processing (true whenever at least one bind matched).
func (e *Engine) Press(key uint32, state ModState) (matched []*Bind, suppress bool) {
	layer := e.layers.Current()
	for _, b := range e.binds {
		if b.Layer == layer && b.Key == key && b.Mods.Matches(state) {
			matched = append(matched, b)
		}
	}
	if len(matched) > 0 {
		e.active[key] = matched
		return matched, true
	}
	return nil, false
}

// Release delivers a key/button release. The release is matched against
// whichever binds fired on the corresponding press — not
// re-matched against the (possibly now different) modifier state — so
// suppression stays symmetric with the press.
func (e *Engine) Release(key uint32, _ ModState) (matched []*Bind, suppress bool) {
	matched, ok := e.active[key]
	if !ok {
		return nil, false
	}
	delete(e.active, key)
	return matched, true
}
