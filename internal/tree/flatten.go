package tree

// Flatten returns the depth-first pre-order display list of forest.
// A node whose id is in collapsed is emitted, but its descendants are not.
// Collapsed on each entry reflects membership in collapsed only, so a
// collapsed node hidden under a collapsed ancestor would still be marked.
func Flatten(forest []*Node, collapsed IDSet) []FlattenedNode {
	out := make([]FlattenedNode, 0, len(forest))
	return appendFlattened(out, forest, NoParent, 0, collapsed)
}

func appendFlattened(out []FlattenedNode, siblings []*Node, parent ID, depth int, collapsed IDSet) []FlattenedNode {
	for i, n := range siblings {
		isCollapsed := collapsed.Has(n.ID)
		out = append(out, FlattenedNode{
			Node:      n,
			ParentID:  parent,
			Depth:     depth,
			Index:     i,
			Collapsed: isCollapsed,
		})
		if !isCollapsed && len(n.Children) > 0 {
			out = appendFlattened(out, n.Children, n.ID, depth+1, collapsed)
		}
	}
	return out
}

// Count returns the number of nodes in forest.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}

// CollapsibleIDs returns the ids of every node with children, in pre-order.
func CollapsibleIDs(forest []*Node) []ID {
	var ids []ID
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if len(n.Children) > 0 {
				ids = append(ids, n.ID)
				walk(n.Children)
			}
		}
	}
	walk(forest)
	return ids
}
