package layout

import (
	"testing"

	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

func TestResolveSplitsAreaByNormalizedProportion(t *testing.T) {
	root := &Node{
		Direction: Horizontal,
		Children: []*Node{
			{TraversalIndex: 0, Proportion: 1},
			{TraversalIndex: 1, Proportion: 3},
		},
	}
	area := output.Rect{X: 0, Y: 0, Width: 1000, Height: 500}
	leaves := Resolve(root, area)
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if leaves[0].Width != 250 {
		t.Fatalf("expected first leaf width 250 (1/4 of 1000), got %d", leaves[0].Width)
	}
	if leaves[1].Width != 750 {
		t.Fatalf("expected second leaf to absorb remainder (750), got %d", leaves[1].Width)
	}
	if leaves[0].Height != 500 || leaves[1].Height != 500 {
		t.Fatal("expected full height on a horizontal split")
	}
}

func TestAscendingTraversalIndexOrdersLeaves(t *testing.T) {
	root := &Node{
		Direction: Horizontal,
		Children: []*Node{
			{TraversalIndex: 5, Proportion: 1},
			{TraversalIndex: 1, Proportion: 1},
		},
	}
	area := output.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	leaves := Resolve(root, area)
	// TraversalIndex 1 sorts before 5, so its rectangle (the left half)
	// must come first in walk order.
	if leaves[0].X != 0 {
		t.Fatalf("expected lower traversal_index to resolve first, got %+v", leaves)
	}
}

func TestTraversalOverridesPermuteOrder(t *testing.T) {
	root := &Node{
		Direction: Horizontal,
		Children: []*Node{
			{TraversalIndex: 0, Proportion: 1},
			{TraversalIndex: 1, Proportion: 1},
		},
		TraversalOverrides: []int32{1, 0}, // reverse the index-sorted order
	}
	area := output.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	leaves := Resolve(root, area)
	if leaves[0].X != 500 {
		t.Fatalf("expected override to put the second child first, got %+v", leaves)
	}
}

func TestZipGivesSurplusWindowsZeroSizedRects(t *testing.T) {
	leaves := []output.Rect{{X: 0, Y: 0, Width: 100, Height: 100}}
	windows := []ids.WindowID{1, 2, 3}
	got := Zip(leaves, windows)
	if got[1] != leaves[0] {
		t.Fatalf("expected the one leaf to go to the first window, got %+v", got[1])
	}
	zero := output.Rect{}
	if got[2] != zero || got[3] != zero {
		t.Fatalf("expected surplus windows to get a zero-sized rect, got %+v and %+v", got[2], got[3])
	}
}

func TestRequesterDiscardsStaleResponse(t *testing.T) {
	var alloc ids.Registry
	r := NewRequester(&alloc)

	first := r.Begin("DP-1", output.Rect{Width: 100, Height: 100}, []ids.WindowID{1})
	second := r.Begin("DP-1", output.Rect{Width: 100, Height: 100}, []ids.WindowID{1, 2})

	if r.IsCurrent("DP-1", first.ID) {
		t.Fatal("first request should have been superseded by second")
	}
	if !r.IsCurrent("DP-1", second.ID) {
		t.Fatal("second request should be current")
	}

	_, ok := r.Resolve("DP-1", first.ID, Leaf(1), second.Area, second.WindowIDs)
	if ok {
		t.Fatal("expected stale response to be rejected")
	}
}

func TestGeneratorsProduceOneLeafPerWindow(t *testing.T) {
	for _, gen := range []func(int) *Node{MasterStack, Dwindle, Spiral, Corner, Fair} {
		for n := 1; n <= 5; n++ {
			leaves := Resolve(gen(n), output.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
			if len(leaves) != n {
				t.Fatalf("expected %d leaves, got %d", n, len(leaves))
			}
		}
	}
}
