// Package tag implements the tag model: per-output tag sets, activation,
// and the bookkeeping that keeps a window's tag set in sync with which
// outputs it is visible on.
package tag

import (
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// Tag is a user-named label on an output. Names are not
// unique, even within one output.
type Tag struct {
	ID     ids.TagID
	Name   string
	Output string // owning output's Name
	Active bool
}

// WindowSet is the narrow interface the tag model needs from whatever
// owns the windows — kept separate from the window package to avoid a
// cyclic dependency (window needs to know which tags it holds, tag needs
// to know which windows hold it; only the command/core layer needs both).
type WindowSet interface {
	TagsOf(w ids.WindowID) []ids.TagID
	SetTagsOf(w ids.WindowID, tags []ids.TagID)
	AllWindows() []ids.WindowID
}

// Model owns every Tag in the compositor, keyed by ID. Each output's tags
// in insertion order are kept on the output itself (output.Tags).
type Model struct {
	byID map[ids.TagID]*Tag
}

// NewModel returns an empty tag model.
func NewModel() *Model {
	return &Model{byID: make(map[ids.TagID]*Tag)}
}

// Get returns the tag with the given ID, or nil if it no longer exists.
// Lookups by ID always return "none" rather than panicking, even in the
// same tick the entity was destroyed.
func (m *Model) Get(id ids.TagID) *Tag {
	return m.byID[id]
}

// Add creates len(names) new tags on o, appending them to o.Tags in the
// order given. Duplicate names are allowed.
func (m *Model) Add(alloc *ids.Registry, o *output.Output, names []string) []*Tag {
	created := make([]*Tag, 0, len(names))
	for _, name := range names {
		t := &Tag{ID: alloc.NewTagID(), Name: name, Output: o.Name}
		m.byID[t.ID] = t
		o.Tags = append(o.Tags, t.ID)
		created = append(created, t)
	}
	return created
}

// Remove detaches tag from every window that holds it and deletes it
// from its output's tag list and the registry. If a window would lose
// its last tag, the tag is removed from the window anyway and the window
// becomes orphaned — Remove never refuses to proceed on that account;
// orphan repair is the caller's job via a later tag assignment (for
// example core.State.WindowSetTags).
func (m *Model) Remove(o *output.Output, t ids.TagID, windows WindowSet) {
	delete(m.byID, t)

	for i, id := range o.Tags {
		if id == t {
			o.Tags = append(o.Tags[:i], o.Tags[i+1:]...)
			break
		}
	}

	if windows == nil {
		return
	}
	for _, w := range windows.AllWindows() {
		cur := windows.TagsOf(w)
		next := cur[:0:0]
		for _, id := range cur {
			if id != t {
				next = append(next, id)
			}
		}
		if len(next) != len(cur) {
			windows.SetTagsOf(w, next)
		}
	}
}

// SetActive sets tag's active flag directly.
func (m *Model) SetActive(t *Tag, active bool) {
	t.Active = active
}

// ToggleActive flips tag's active flag.
func (m *Model) ToggleActive(t *Tag) {
	t.Active = !t.Active
}

// SwitchTo deactivates every other tag on t's output and activates t
//. `switch_to(t); switch_to(t)` is idempotent by
// construction: the second call re-applies the same assignment.
func (m *Model) SwitchTo(o *output.Output, t *Tag) {
	for _, id := range o.Tags {
		other := m.byID[id]
		if other == nil {
			continue
		}
		other.Active = other.ID == t.ID
	}
}

// ActiveTags returns the active ⊂ tags subset for o, in insertion order.
func (m *Model) ActiveTags(o *output.Output) []*Tag {
	var active []*Tag
	for _, id := range o.Tags {
		if t := m.byID[id]; t != nil && t.Active {
			active = append(active, t)
		}
	}
	return active
}

// Windows returns every window with tag t, in whatever order windows
// reports them (tag iteration order is only defined for layout requests,
// which consult output.Tags directly rather than this).
func (m *Model) Windows(t ids.TagID, windows WindowSet) []ids.WindowID {
	var out []ids.WindowID
	for _, w := range windows.AllWindows() {
		for _, id := range windows.TagsOf(w) {
			if id == t {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
