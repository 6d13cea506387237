package tree

import (
	"reflect"
	"strings"
	"testing"
)

func node(id, label string, children ...*Node) *Node {
	return &Node{ID: ID(id), Label: label, Children: children}
}

// sampleForest is A(A1) B.
func sampleForest() []*Node {
	return []*Node{
		node("1", "A", node("1-1", "A1")),
		node("2", "B"),
	}
}

// deepForest is A(A1(A1a A1b) A2) B(B1) C.
func deepForest() []*Node {
	return []*Node{
		node("a", "A",
			node("a1", "A1", node("a1a", "A1a"), node("a1b", "A1b")),
			node("a2", "A2"),
		),
		node("b", "B", node("b1", "B1")),
		node("c", "C"),
	}
}

// shape renders a forest as "id(child child) id" for compact comparisons.
func shape(forest []*Node) string {
	parts := make([]string, 0, len(forest))
	for _, n := range forest {
		s := string(n.ID)
		if len(n.Children) > 0 {
			s += "(" + shape(n.Children) + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func flatIDs(flat []FlattenedNode) []ID {
	ids := make([]ID, len(flat))
	for i, f := range flat {
		ids[i] = f.ID()
	}
	return ids
}

// TestFlattenExpanded verifies depth, index and parent on an expanded forest
func TestFlattenExpanded(t *testing.T) {
	flat := Flatten(sampleForest(), nil)

	want := []struct {
		id     ID
		parent ID
		depth  int
		index  int
	}{
		{"1", NoParent, 0, 0},
		{"1-1", "1", 1, 0},
		{"2", NoParent, 0, 1},
	}
	if len(flat) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(flat))
	}
	for i, w := range want {
		f := flat[i]
		if f.ID() != w.id || f.ParentID != w.parent || f.Depth != w.depth || f.Index != w.index {
			t.Errorf("entry %d: expected %+v, got id=%s parent=%q depth=%d index=%d",
				i, w, f.ID(), f.ParentID, f.Depth, f.Index)
		}
		if f.Collapsed {
			t.Errorf("entry %d: expected not collapsed", i)
		}
	}
}

// TestFlattenCollapsed verifies a collapsed node hides only its descendants
func TestFlattenCollapsed(t *testing.T) {
	flat := Flatten(sampleForest(), NewIDSet("1"))

	if got := flatIDs(flat); !reflect.DeepEqual(got, []ID{"1", "2"}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
	if !flat[0].Collapsed {
		t.Error("expected node 1 to be marked collapsed")
	}
	if flat[1].Collapsed {
		t.Error("expected node 2 not to be marked collapsed")
	}
}

// TestFlattenNestedCollapsed verifies collapsed marking ignores reachability
func TestFlattenNestedCollapsed(t *testing.T) {
	flat := Flatten(deepForest(), NewIDSet("a1"))
	want := []ID{"a", "a1", "a2", "b", "b1", "c"}
	if got := flatIDs(flat); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !flat[1].Collapsed {
		t.Error("expected a1 to be marked collapsed")
	}

	// a1 hidden under collapsed a: it is not emitted at all
	flat = Flatten(deepForest(), NewIDSet("a", "a1"))
	want = []ID{"a", "b", "b1", "c"}
	if got := flatIDs(flat); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestFlattenEmpty verifies an empty forest flattens to nothing
func TestFlattenEmpty(t *testing.T) {
	if flat := Flatten(nil, NewIDSet("x")); len(flat) != 0 {
		t.Errorf("expected empty list, got %d entries", len(flat))
	}
}

func TestFindByID(t *testing.T) {
	forest := deepForest()
	tests := []struct {
		id    ID
		found bool
		label string
	}{
		{"a", true, "A"},
		{"a1b", true, "A1b"},
		{"b1", true, "B1"},
		{"c", true, "C"},
		{"missing", false, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			n, ok := FindByID(forest, tt.id)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && (n.ID != tt.id || n.Label != tt.label) {
				t.Errorf("expected %s/%s, got %s/%s", tt.id, tt.label, n.ID, n.Label)
			}
			if !ok && n != nil {
				t.Errorf("expected nil node when not found")
			}
		})
	}
}

func TestNodePathAndParents(t *testing.T) {
	forest := deepForest()

	if got := NodePath(forest, "a1b"); !reflect.DeepEqual(got, []ID{"a", "a1", "a1b"}) {
		t.Errorf("expected path [a a1 a1b], got %v", got)
	}
	if got := ParentNodes(forest, "a1b"); !reflect.DeepEqual(got, []ID{"a", "a1"}) {
		t.Errorf("expected parents [a a1], got %v", got)
	}
	if got := NodePath(forest, "c"); !reflect.DeepEqual(got, []ID{"c"}) {
		t.Errorf("expected path [c], got %v", got)
	}
	if got := ParentNodes(forest, "c"); len(got) != 0 {
		t.Errorf("expected no parents for root, got %v", got)
	}
	if got := NodePath(forest, "nope"); len(got) != 0 {
		t.Errorf("expected empty path, got %v", got)
	}
	if got := ParentNodes(forest, "nope"); len(got) != 0 {
		t.Errorf("expected empty parents, got %v", got)
	}
}

func TestAllChildIDs(t *testing.T) {
	a, _ := FindByID(deepForest(), "a")
	want := []ID{"a", "a1", "a1a", "a1b", "a2"}
	if got := AllChildIDs(a); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := AllChildIDs(node("leaf", "L")); !reflect.DeepEqual(got, []ID{"leaf"}) {
		t.Errorf("expected [leaf], got %v", got)
	}
	if got := AllChildIDs(nil); got != nil {
		t.Errorf("expected nil for nil node, got %v", got)
	}
}

func TestCountAndCollapsibleIDs(t *testing.T) {
	forest := deepForest()
	if got := Count(forest); got != 8 {
		t.Errorf("expected 8 nodes, got %d", got)
	}
	want := []ID{"a", "a1", "b"}
	if got := CollapsibleIDs(forest); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestIDSet(t *testing.T) {
	s := NewIDSet("b", "a")
	if !s.Has("a") || s.Has("z") {
		t.Fatal("unexpected membership")
	}
	toggled := s.Toggle("a").Toggle("z")
	if toggled.Has("a") || !toggled.Has("z") {
		t.Errorf("toggle did not flip membership: %v", toggled.Slice())
	}
	if !s.Has("a") {
		t.Error("toggle must not modify the receiver")
	}
	if got := toggled.Slice(); !reflect.DeepEqual(got, []ID{"b", "z"}) {
		t.Errorf("expected sorted [b z], got %v", got)
	}
	var empty IDSet
	if empty.Has("a") {
		t.Error("nil set must be empty")
	}
}

func TestEqual(t *testing.T) {
	a := deepForest()
	if !Equal(a, deepForest()) {
		t.Error("expected structurally equal forests to compare equal")
	}
	if Equal(a, Relabel(a, "a1b", "changed")) {
		t.Error("expected relabelled forest to differ")
	}
	if Equal(a, MoveNode(a, "b", Up)) {
		t.Error("expected reordered forest to differ")
	}
	if !Equal(nil, []*Node{}) {
		t.Error("expected nil and empty forests to be equal")
	}
	disabled := deepForest()
	disabled[2] = &Node{ID: "c", Label: disabled[2].Label, Disabled: true}
	if Equal(a, disabled) {
		t.Error("expected flag change to differ")
	}
}
