package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bethropolis/grove/internal/sortable"
)

// Direction is a repositioning instruction for MoveNode.
type Direction int

const (
	Up      Direction = iota // swap with previous sibling
	Down                     // swap with next sibling
	Indent                   // become last child of previous sibling
	Outdent                  // move out to just after the parent
)

var directionNames = [...]string{"up", "down", "indent", "outdent"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts "up", "down", "indent" or "outdent" (any case).
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// rewriteAt copies the path addressed by prefix and replaces the sibling
// list found there with fn applied to a private copy of it.
func rewriteAt(list []*Node, prefix []int, fn func([]*Node) []*Node) []*Node {
	out := slices.Clone(list)
	if len(prefix) == 0 {
		return fn(out)
	}
	i := prefix[0]
	n := out[i].shallowCopy()
	n.Children = rewriteAt(n.Children, prefix[1:], fn)
	out[i] = n
	return out
}

// RemoveByID returns forest without the node with id (and its subtree).
// An unknown id yields a copy of the top-level slice.
func RemoveByID(forest []*Node, id ID) []*Node {
	path := indexPath(forest, id)
	if path == nil {
		return slices.Clone(forest)
	}
	last := len(path) - 1
	idx := path[last]
	return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
		return slices.Delete(s, idx, idx+1)
	})
}

// MoveNode repositions the node with id relative to its current siblings.
// When the move is impossible (unknown id, already first/last, nothing to
// indent under, already top level) a copy of the top-level slice is
// returned.
//
// Outdent locates the parent through the node's index path, so it works on
// any forest regardless of how earlier operations shared or copied slices.
func MoveNode(forest []*Node, id ID, dir Direction) []*Node {
	path := indexPath(forest, id)
	if path == nil {
		return slices.Clone(forest)
	}
	last := len(path) - 1
	idx := path[last]
	siblings := siblingsAt(forest, path[:last])

	switch dir {
	case Up:
		if idx == 0 {
			break
		}
		return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
			s[idx-1], s[idx] = s[idx], s[idx-1]
			return s
		})

	case Down:
		if idx >= len(siblings)-1 {
			break
		}
		return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
			s[idx], s[idx+1] = s[idx+1], s[idx]
			return s
		})

	case Indent:
		if idx == 0 {
			break
		}
		return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
			prev := s[idx-1].shallowCopy()
			prev.Children = append(slices.Clone(prev.Children), s[idx])
			s[idx-1] = prev
			return slices.Delete(s, idx, idx+1)
		})

	case Outdent:
		if last == 0 {
			break
		}
		parentIdx := path[last-1]
		return rewriteAt(forest, path[:last-1], func(s []*Node) []*Node {
			parent := s[parentIdx].shallowCopy()
			moved := parent.Children[idx]
			parent.Children = slices.Delete(slices.Clone(parent.Children), idx, idx+1)
			s[parentIdx] = parent
			return slices.Insert(s, parentIdx+1, moved)
		})
	}
	return slices.Clone(forest)
}

// InsertAfter inserts node right after the node with id among its
// siblings. If id is unknown, node is appended at the top level.
func InsertAfter(forest []*Node, id ID, node *Node) []*Node {
	path := indexPath(forest, id)
	if path == nil {
		return append(slices.Clone(forest), node)
	}
	last := len(path) - 1
	idx := path[last]
	return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
		return slices.Insert(s, idx+1, node)
	})
}

// AppendChild appends node as the last child of parentID.
func AppendChild(forest []*Node, parentID ID, node *Node) []*Node {
	return replaceNode(forest, parentID, func(p *Node) {
		p.Children = append(slices.Clone(p.Children), node)
	})
}

// Relabel sets the label of the node with id.
func Relabel(forest []*Node, id ID, label string) []*Node {
	return replaceNode(forest, id, func(n *Node) {
		n.Label = label
	})
}

// replaceNode copies the node with id, lets edit change the copy and puts
// it back in place.
func replaceNode(forest []*Node, id ID, edit func(*Node)) []*Node {
	path := indexPath(forest, id)
	if path == nil {
		return slices.Clone(forest)
	}
	last := len(path) - 1
	idx := path[last]
	return rewriteAt(forest, path[:last], func(s []*Node) []*Node {
		c := s[idx].shallowCopy()
		edit(c)
		s[idx] = c
		return s
	})
}

// Reorder moves the child at index from to index to within the children of
// parentID (NoParent addresses the top level). Invalid indexes or an
// unknown parent yield a copy of the top-level slice.
func Reorder(forest []*Node, parentID ID, from, to int) []*Node {
	var prefix []int
	if parentID != NoParent {
		prefix = indexPath(forest, parentID)
		if prefix == nil {
			return slices.Clone(forest)
		}
	}
	siblings := siblingsAt(forest, prefix)
	if from < 0 || from >= len(siblings) || to < 0 || to >= len(siblings) || from == to {
		return slices.Clone(forest)
	}
	return rewriteAt(forest, prefix, func(s []*Node) []*Node {
		return sortable.Move(s, from, to)
	})
}
