package layout

import (
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// Request is what the core sends a connected layout-generator client when
// an output's visible window set or area changes.
type Request struct {
	ID        ids.RequestID
	Output    string
	Area      output.Rect
	WindowIDs []ids.WindowID
}

// Requester tracks, per output, the most recently issued request-id so
// that late responses to a superseded request can be discarded rather
// than clobbering a newer layout.
type Requester struct {
	alloc      *ids.Registry
	outstanding map[string]ids.RequestID
}

// NewRequester returns a Requester using alloc to mint request-ids.
func NewRequester(alloc *ids.Registry) *Requester {
	return &Requester{alloc: alloc, outstanding: make(map[string]ids.RequestID)}
}

// Begin issues a new Request for outputName, superseding (cancelling) any
// request still outstanding for that output.
func (r *Requester) Begin(outputName string, area output.Rect, windows []ids.WindowID) Request {
	id := r.alloc.NewRequestID()
	r.outstanding[outputName] = id
	return Request{ID: id, Output: outputName, Area: area, WindowIDs: append([]ids.WindowID(nil), windows...)}
}

// IsCurrent reports whether id is still the latest outstanding request for
// outputName. A response whose id fails this check is stale and must be
// discarded without applying its geometry.
func (r *Requester) IsCurrent(outputName string, id ids.RequestID) bool {
	return r.outstanding[outputName] == id
}

// Resolve applies a layout response's tree to windows, returning the
// geometry assigned to each, or (nil, false) if id is stale.
func (r *Requester) Resolve(outputName string, id ids.RequestID, tree *Node, area output.Rect, windows []ids.WindowID) (map[ids.WindowID]output.Rect, bool) {
	if !r.IsCurrent(outputName, id) {
		return nil, false
	}
	leaves := Resolve(tree, area)
	return Zip(leaves, windows), true
}
