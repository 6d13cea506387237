// Package tree implements an ordered forest of labeled nodes and the pure
// operations used by outline and sortable-tree views: flattening to a
// display list, lookup, removal and directional moves.
//
// Every operation returns a new forest. Only the slices and nodes on the
// path from a root to the changed sibling list are copied; all other
// subtrees are shared with the input, so callers must treat nodes as
// immutable.
package tree

import "sort"

// ID identifies a node. IDs are unique across the whole forest.
type ID string

// NoParent is the ParentID of top-level nodes. It is not a valid node id.
const NoParent ID = ""

// Node is one entry of the forest.
type Node struct {
	ID          ID
	Label       string
	Children    []*Node
	Disabled    bool // opaque to this package
	Collapsible bool // opaque to this package
}

// shallowCopy returns a copy of n sharing its children slice.
func (n *Node) shallowCopy() *Node {
	c := *n
	return &c
}

// FlattenedNode is a node as it appears in a flattened display list.
type FlattenedNode struct {
	Node      *Node
	ParentID  ID   // NoParent for top-level nodes
	Depth     int  // 0 for top-level nodes
	Index     int  // position among its siblings
	Collapsed bool // ID is in the collapsed set
}

// ID is a shorthand for f.Node.ID.
func (f FlattenedNode) ID() ID {
	return f.Node.ID
}

// IDSet is a set of node ids, used for the collapsed set.
type IDSet map[ID]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s IDSet) Add(id ID) {
	s[id] = struct{}{}
}

// Remove deletes id.
func (s IDSet) Remove(id ID) {
	delete(s, id)
}

// Toggle returns a copy of the set with id flipped.
func (s IDSet) Toggle(id ID) IDSet {
	out := s.Clone()
	if out.Has(id) {
		out.Remove(id)
	} else {
		out.Add(id)
	}
	return out
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Slice returns the ids in sorted order.
func (s IDSet) Slice() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
