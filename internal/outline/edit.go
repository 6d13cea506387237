package outline

import (
	"strconv"
	"strings"

	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/tree"
)

// commit records next as one history entry. A forest equal to the present
// is not recorded and commit returns false.
func (e *Editor) commit(next []*tree.Node, reason string, selectID tree.ID) bool {
	if tree.Equal(next, e.history.Present()) {
		logger.Debugf("Outline: %s changed nothing", reason)
		return false
	}
	e.history.Commit(next)
	e.afterChange(reason, selectID)
	return true
}

// afterChange rebuilds the view after the present forest was replaced.
func (e *Editor) afterChange(reason string, selectID tree.ID) {
	before := e.cursor
	present := e.history.Present()
	for id := range e.collapsed {
		if n, ok := tree.FindByID(present, id); !ok || len(n.Children) == 0 {
			e.collapsed.Remove(id)
		}
	}
	e.refresh(selectID)

	undo, redo := e.history.Len()
	e.queue(event.TypeTreeChanged, event.TreeChangedData{Reason: reason, Count: tree.Count(present)})
	e.queue(event.TypeHistoryChanged, event.HistoryChangedData{Undo: undo, Redo: redo})
	if e.cursor != before {
		e.queue(event.TypeCursorMoved, event.CursorMovedData{Row: e.cursor, ID: e.selectedID()})
	}
}

// revealAncestors expands every collapsed ancestor of id in forest.
func (e *Editor) revealAncestors(forest []*tree.Node, id tree.ID) {
	for _, a := range tree.ParentNodes(forest, id) {
		e.collapsed.Remove(a)
	}
}

// Move repositions the selected node. It returns false, and records
// nothing, when the move is not possible from the current position.
func (e *Editor) Move(dir tree.Direction) bool {
	var ok bool
	e.update(func() {
		sel := e.selectedID()
		if sel == tree.NoParent {
			return
		}
		next := tree.MoveNode(e.history.Present(), sel, dir)
		e.revealAncestors(next, sel)
		ok = e.commit(next, dir.String(), sel)
	})
	return ok
}

// Delete removes the selected node and its descendants. The row below the
// removed subtree becomes selected.
func (e *Editor) Delete() bool {
	var ok bool
	e.update(func() {
		sel := e.selectedID()
		if sel == tree.NoParent {
			return
		}
		ok = e.commit(tree.RemoveByID(e.history.Present(), sel), "delete", tree.NoParent)
	})
	return ok
}

// AddSibling inserts a new node after the selected one, or at the top level
// of an empty outline, and selects it.
func (e *Editor) AddSibling(label string) tree.ID {
	var id tree.ID
	e.update(func() {
		present := e.history.Present()
		id = e.newID(present)
		next := tree.InsertAfter(present, e.selectedID(), &tree.Node{ID: id, Label: label})
		e.commit(next, "add", id)
	})
	return id
}

// AddChild appends a new last child to the selected node, expanding it,
// and selects the new node. Without a selection the node is added at the
// top level.
func (e *Editor) AddChild(label string) tree.ID {
	var id tree.ID
	e.update(func() {
		present := e.history.Present()
		id = e.newID(present)
		n := &tree.Node{ID: id, Label: label}
		sel := e.selectedID()
		var next []*tree.Node
		if sel == tree.NoParent {
			next = append(present[:len(present):len(present)], n)
		} else {
			next = tree.AppendChild(present, sel, n)
			e.collapsed.Remove(sel)
		}
		e.commit(next, "add-child", id)
	})
	return id
}

// Rename sets the label of the selected node.
func (e *Editor) Rename(label string) error {
	var err error
	e.update(func() {
		sel := e.selectedID()
		if sel == tree.NoParent {
			err = ErrNoSelection
			return
		}
		e.commit(tree.Relabel(e.history.Present(), sel, label), "rename", sel)
	})
	return err
}

// Reorder moves the child at index from to index to among the children of
// parentID (tree.NoParent for the top level) and selects it.
func (e *Editor) Reorder(parentID tree.ID, from, to int) bool {
	var ok bool
	e.update(func() {
		present := e.history.Present()
		siblings := present
		if parentID != tree.NoParent {
			p, found := tree.FindByID(present, parentID)
			if !found {
				return
			}
			siblings = p.Children
		}
		if from < 0 || from >= len(siblings) {
			return
		}
		moved := siblings[from].ID
		ok = e.commit(tree.Reorder(present, parentID, from, to), "reorder", moved)
	})
	return ok
}

// Undo restores the previous forest. The selection stays on the same node
// when it still exists.
func (e *Editor) Undo() bool {
	var ok bool
	e.update(func() {
		sel := e.selectedID()
		if _, ok = e.history.Undo(); ok {
			e.afterChange("undo", sel)
		}
	})
	return ok
}

// Redo re-applies the most recently undone forest.
func (e *Editor) Redo() bool {
	var ok bool
	e.update(func() {
		sel := e.selectedID()
		if _, ok = e.history.Redo(); ok {
			e.afterChange("redo", sel)
		}
	})
	return ok
}

// newID returns one more than the largest numeric id in forest, skipping
// any id already taken.
func (e *Editor) newID(forest []*tree.Node) tree.ID {
	taken := make(map[tree.ID]struct{})
	highest := 0
	for _, root := range forest {
		for _, id := range tree.AllChildIDs(root) {
			taken[id] = struct{}{}
			s := string(id)
			if i := strings.LastIndexByte(s, '-'); i >= 0 {
				s = s[i+1:]
			}
			if n, err := strconv.Atoi(s); err == nil && n > highest {
				highest = n
			}
		}
	}
	for n := highest + 1; ; n++ {
		id := tree.ID(strconv.Itoa(n))
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
