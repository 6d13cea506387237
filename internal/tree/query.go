package tree

// FindByID returns the first node with id in pre-order, or nil and false.
func FindByID(forest []*Node, id ID) (*Node, bool) {
	for _, n := range forest {
		if n.ID == id {
			return n, true
		}
		if found, ok := FindByID(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// NodePath returns the ids from a root down to and including id.
// It returns nil when id is not in the forest.
func NodePath(forest []*Node, id ID) []ID {
	for _, n := range forest {
		if n.ID == id {
			return []ID{n.ID}
		}
		if sub := NodePath(n.Children, id); sub != nil {
			return append([]ID{n.ID}, sub...)
		}
	}
	return nil
}

// ParentNodes returns the ancestors of id, root first.
func ParentNodes(forest []*Node, id ID) []ID {
	path := NodePath(forest, id)
	if len(path) == 0 {
		return nil
	}
	return path[:len(path)-1]
}

// AllChildIDs returns n's id followed by every descendant id in pre-order.
func AllChildIDs(n *Node) []ID {
	if n == nil {
		return nil
	}
	ids := []ID{n.ID}
	for _, c := range n.Children {
		ids = append(ids, AllChildIDs(c)...)
	}
	return ids
}

// indexPath returns the sibling index at each level leading to id.
func indexPath(forest []*Node, id ID) []int {
	for i, n := range forest {
		if n.ID == id {
			return []int{i}
		}
		if sub := indexPath(n.Children, id); sub != nil {
			return append([]int{i}, sub...)
		}
	}
	return nil
}

// siblingsAt returns the sibling list addressed by prefix (the children of
// the node at prefix, or forest itself for an empty prefix).
func siblingsAt(forest []*Node, prefix []int) []*Node {
	list := forest
	for _, i := range prefix {
		list = list[i].Children
	}
	return list
}

// Equal reports whether a and b have the same shape, ids, labels and flags.
func Equal(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x == y {
			continue
		}
		if x.ID != y.ID || x.Label != y.Label || x.Disabled != y.Disabled || x.Collapsible != y.Collapsible {
			return false
		}
		if !Equal(x.Children, y.Children) {
			return false
		}
	}
	return true
}
