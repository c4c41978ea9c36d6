// Package layout implements the external layout requester:
// the core never computes tiled geometry itself, it asks a connected
// layout-generator client for a tree and walks the response back into
// window rectangles.
package layout

import (
	"sort"

	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
)

// Direction is the axis a non-leaf node splits its area along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Node is one node of a layout tree returned by a layout-generator client.
// Leaves (no Children) correspond one-to-one, in walk order, to the
// windows being laid out.
type Node struct {
	TraversalIndex     int32
	TraversalOverrides []int32
	Proportion         float64
	Direction          Direction
	Children           []*Node
}

// Leaf returns a childless Node with the given relative weight.
func Leaf(proportion float64) *Node {
	return &Node{Proportion: proportion}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// orderedChildren returns n.Children sorted ascending by TraversalIndex
// (stable, so equal indices keep insertion order), then
// permuted by TraversalOverrides if present. An override list is a
// permutation of positions in the index-sorted slice: overrides[i] names
// which sorted-position should occupy final position i.
func (n *Node) orderedChildren() []*Node {
	sorted := make([]*Node, len(n.Children))
	copy(sorted, n.Children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TraversalIndex < sorted[j].TraversalIndex
	})

	if len(n.TraversalOverrides) == 0 || len(n.TraversalOverrides) != len(sorted) {
		return sorted
	}
	out := make([]*Node, len(sorted))
	for finalPos, sourcePos := range n.TraversalOverrides {
		if sourcePos < 0 || int(sourcePos) >= len(sorted) {
			return sorted // malformed override: fall back to index order
		}
		out[finalPos] = sorted[sourcePos]
	}
	return out
}

// normalizedProportions returns each child's share of area, normalizing
// to sum 1.0. Children with non-positive proportion are treated as having
// equal weight among themselves if the whole set sums to zero.
func normalizedProportions(children []*Node) []float64 {
	sum := 0.0
	for _, c := range children {
		if c.Proportion > 0 {
			sum += c.Proportion
		}
	}
	out := make([]float64, len(children))
	if sum <= 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(children))
		}
		return out
	}
	for i, c := range children {
		p := c.Proportion
		if p <= 0 {
			p = 0
		}
		out[i] = p / sum
	}
	return out
}

// Resolve walks root depth-first in traversal order and returns the
// rectangle assigned to each leaf, in the order leaves are visited. That
// order is what Zip uses to pair leaves with windows.
func Resolve(root *Node, area output.Rect) []output.Rect {
	var leaves []output.Rect
	walk(root, area, &leaves)
	return leaves
}

func walk(n *Node, area output.Rect, out *[]output.Rect) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		*out = append(*out, area)
		return
	}

	children := n.orderedChildren()
	weights := normalizedProportions(children)

	switch n.Direction {
	case Vertical:
		y := area.Y
		remaining := area.Height
		for i, c := range children {
			h := int32(float64(area.Height) * weights[i])
			if i == len(children)-1 {
				h = remaining // last child absorbs rounding error
			}
			walk(c, output.Rect{X: area.X, Y: y, Width: area.Width, Height: h}, out)
			y += h
			remaining -= h
		}
	default: // Horizontal
		x := area.X
		remaining := area.Width
		for i, c := range children {
			w := int32(float64(area.Width) * weights[i])
			if i == len(children)-1 {
				w = remaining
			}
			walk(c, output.Rect{X: x, Y: area.Y, Width: w, Height: area.Height}, out)
			x += w
			remaining -= w
		}
	}
}

// Zip pairs leaf rectangles with windows in walk order. Surplus leaves
// (more leaves than windows) are simply unused. Surplus windows (more
// windows than leaves) get the zero Rect (position 0,0, size 0x0) rather
// than overlaying an existing leaf — callers should treat a
// zero-sized window as hidden until the next layout response arrives.
func Zip(leaves []output.Rect, windows []ids.WindowID) map[ids.WindowID]output.Rect {
	out := make(map[ids.WindowID]output.Rect, len(windows))
	for i, w := range windows {
		if i < len(leaves) {
			out[w] = leaves[i]
		} else {
			out[w] = output.Rect{}
		}
	}
	return out
}
