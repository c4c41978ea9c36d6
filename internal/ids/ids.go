// Package ids allocates the process-unique, monotonically increasing IDs
// that identify windows, tags, binds, and requests. It only allocates;
// the ID-to-entity lookup lives with the packages that own each entity.
//
// IDs never collide within a run and are never reused after an entity is
// removed. There is no locking here: the registry is only ever touched
// from the single event-loop thread.
package ids

// WindowID identifies a Window for the lifetime of the compositor run.
type WindowID uint32

// TagID identifies a Tag for the lifetime of the compositor run.
type TagID uint32

// BindID identifies a keybind or mousebind registration.
type BindID uint32

// RequestID identifies a single in-flight layout request or window-rule
// gate request; both draw from the same sequence.
type RequestID uint32

// Allocator hands out monotonically increasing IDs of a single kind.
// Grouped here because every entity kind needs one and they must never
// collide within a run.
type Allocator struct {
	next uint32
}

// Next returns the next ID in sequence, starting at 1 so the zero value
// of a WindowID/TagID/BindID/RequestID can mean "none".
func (a *Allocator) Next() uint32 {
	a.next++
	return a.next
}

// Registry composes one Allocator per entity kind. Which package owns the
// ID-to-entity map is left to the package that owns the concrete entity
// type (window, tag, output); Registry itself only allocates IDs. This
// keeps ids free of any dependency on window/tag/output, avoiding a
// cyclic import between them.
type Registry struct {
	windows Allocator
	tags    Allocator
	binds   Allocator
	reqs    Allocator
}

// NewWindowID allocates the next WindowID.
func (r *Registry) NewWindowID() WindowID { return WindowID(r.windows.Next()) }

// NewTagID allocates the next TagID.
func (r *Registry) NewTagID() TagID { return TagID(r.tags.Next()) }

// NewBindID allocates the next BindID.
func (r *Registry) NewBindID() BindID { return BindID(r.binds.Next()) }

// NewRequestID allocates the next RequestID.
func (r *Registry) NewRequestID() RequestID { return RequestID(r.reqs.Next()) }
