package tag

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// fakeWindows is a minimal WindowSet for testing orphan/re-tag behavior
// without pulling in the window package (the tag package does not import
// window).
type fakeWindows struct {
	tags map[ids.WindowID][]ids.TagID
}

func newFakeWindows() *fakeWindows { return &fakeWindows{tags: map[ids.WindowID][]ids.TagID{}} }

func (f *fakeWindows) TagsOf(w ids.WindowID) []ids.TagID      { return f.tags[w] }
func (f *fakeWindows) SetTagsOf(w ids.WindowID, t []ids.TagID) { f.tags[w] = t }
func (f *fakeWindows) AllWindows() []ids.WindowID {
	out := make([]ids.WindowID, 0, len(f.tags))
	for w := range f.tags {
		out = append(out, w)
	}
	return out
}

func TestAddAllowsDuplicateNames(t *testing.T) {
	var alloc ids.Registry
	m := NewModel()
	o := output.New("DP-1")

	created := m.Add(&alloc, o, []string{"1", "1"})
	if len(created) != 2 || created[0].ID == created[1].ID {
		t.Fatalf("expected two distinct tags both named 1, got %+v", created)
	}
	if len(o.Tags) != 2 {
		t.Fatalf("expected output to carry 2 tags, got %d", len(o.Tags))
	}
}

func TestSwitchToIsIdempotent(t *testing.T) {
	var alloc ids.Registry
	m := NewModel()
	o := output.New("DP-1")
	tags := m.Add(&alloc, o, []string{"1", "2", "3"})

	m.SwitchTo(o, tags[1])
	m.SwitchTo(o, tags[1])

	active := m.ActiveTags(o)
	if len(active) != 1 || active[0].ID != tags[1].ID {
		t.Fatalf("expected only tag 2 active, got %+v", active)
	}
}

func TestRemoveOrphansWindowThenRetagRestoresVisibility(t *testing.T) {
	var alloc ids.Registry
	m := NewModel()
	o := output.New("DP-1")
	tags := m.Add(&alloc, o, []string{"1", "2", "3"})
	windows := newFakeWindows()

	var win ids.WindowID = 42
	windows.SetTagsOf(win, []ids.TagID{tags[1].ID}) // window has only tag "2"

	m.Remove(o, tags[1].ID, windows)

	if len(windows.TagsOf(win)) != 0 {
		t.Fatalf("expected window to be orphaned (no tags), got %v", windows.TagsOf(win))
	}
	if len(o.Tags) != 2 {
		t.Fatalf("expected output to retain 2 tags after removal, got %d", len(o.Tags))
	}

	newTags := m.Add(&alloc, o, []string{"4"})
	windows.SetTagsOf(win, []ids.TagID{newTags[0].ID})

	if len(windows.TagsOf(win)) != 1 {
		t.Fatal("expected window visibility restored after re-tagging")
	}
}

func TestAddTagsThenRemoveLeavesOutputUnchanged(t *testing.T) {
	var alloc ids.Registry
	m := NewModel()
	o := output.New("DP-1")
	before := append([]ids.TagID(nil), o.Tags...)

	created := m.Add(&alloc, o, []string{"N"})
	m.Remove(o, created[0].ID, nil)

	if len(o.Tags) != len(before) {
		t.Fatalf("expected output tag list unchanged, got %v want %v", o.Tags, before)
	}
}
