package layout

// The functions below are named layout generator presets: ready-made tree
// shapes for common tiling arrangements, since the request/response tree
// protocol by itself describes no concrete layout. Each builds a Node
// tree for n windows; callers feed the result straight into Resolve.

// MasterStack puts window 0 in a large left pane and stacks the rest
// vertically on the right.
func MasterStack(n int) *Node {
	if n <= 0 {
		return Leaf(1)
	}
	if n == 1 {
		return Leaf(1)
	}
	return &Node{
		Direction: Horizontal,
		Children: []*Node{
			{TraversalIndex: 0, Proportion: 0.5},
			weighted(stack(n-1, 1, Vertical), 0.5),
		},
	}
}

// Dwindle recursively halves the remaining area, alternating split
// direction by depth, in the style of a classic binary-tree tiler.
func Dwindle(n int) *Node {
	return dwindle(n, 0, Horizontal)
}

func dwindle(n int, index int32, dir Direction) *Node {
	if n <= 1 {
		return &Node{TraversalIndex: index, Proportion: 1}
	}
	other := Vertical
	if dir == Vertical {
		other = Horizontal
	}
	return &Node{
		TraversalIndex: index,
		Direction:      dir,
		Children: []*Node{
			{TraversalIndex: 0, Proportion: 0.5},
			func() *Node {
				child := dwindle(n-1, 0, other)
				child.Proportion = 0.5
				return child
			}(),
		},
	}
}

// Spiral is structurally identical to Dwindle (alternating binary splits);
// the two presets differ only in which corner the generator conceptually
// starts from, a cosmetic distinction the geometry walk in Resolve does
// not model, so it is expressed here as an alias with its own name for
// the command surface to select.
func Spiral(n int) *Node {
	return Dwindle(n)
}

// Corner gives window 0 three quarters of the area and stacks the rest
// along one edge, for a layout where the master window dominates.
func Corner(n int) *Node {
	if n <= 1 {
		return Leaf(1)
	}
	return &Node{
		Direction: Horizontal,
		Children: []*Node{
			{TraversalIndex: 0, Proportion: 0.75},
			weighted(stack(n-1, 1, Vertical), 0.25),
		},
	}
}

// Fair splits area into n equally weighted leaves using a balanced binary
// tree, alternating direction by depth so the result reads as a grid
// rather than a single row or column once n grows.
func Fair(n int) *Node {
	return fair(n, Horizontal)
}

func fair(n int, dir Direction) *Node {
	if n <= 1 {
		return Leaf(1)
	}
	left := n / 2
	right := n - left
	other := Vertical
	if dir == Vertical {
		other = Horizontal
	}
	return &Node{
		Direction: dir,
		Children: []*Node{
			weighted(fair(left, other), float64(left)),
			weighted(fair(right, other), float64(right)),
		},
	}
}

func weighted(n *Node, proportion float64) *Node {
	n.Proportion = proportion
	return n
}

// stack builds a Vertical (or given direction) column of n equally
// weighted leaves, with TraversalIndex starting at startIndex.
func stack(n int, startIndex int32, dir Direction) *Node {
	if n <= 1 {
		return &Node{TraversalIndex: startIndex, Proportion: 1}
	}
	children := make([]*Node, n)
	for i := 0; i < n; i++ {
		children[i] = &Node{TraversalIndex: startIndex + int32(i), Proportion: 1}
	}
	return &Node{TraversalIndex: startIndex, Direction: dir, Children: children}
}
