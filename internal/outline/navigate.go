package outline

import (
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/tree"
)

// SetViewHeight records how many rows the outline view can show.
func (e *Editor) SetViewHeight(h int) {
	e.update(func() {
		e.viewH = max(h, 0)
		e.scrollToCursor()
	})
}

// Viewport returns the index of the first visible row.
func (e *Editor) Viewport() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewportY
}

// scrollToCursor keeps the cursor inside the viewport with ScrollOff rows
// of context where possible.
func (e *Editor) scrollToCursor() {
	if e.viewH <= 0 {
		return
	}
	off := e.opts.ScrollOff
	if off*2 >= e.viewH {
		off = (e.viewH - 1) / 2
	}
	if e.cursor < e.viewportY+off {
		e.viewportY = e.cursor - off
	} else if e.cursor >= e.viewportY+e.viewH-off {
		e.viewportY = e.cursor - e.viewH + 1 + off
	}
	maxY := max(len(e.flat)-e.viewH, 0)
	e.viewportY = min(max(e.viewportY, 0), maxY)
}

// setCursor moves to row and queues a cursor event if the row changed.
func (e *Editor) setCursor(row int) {
	row = min(max(row, 0), max(len(e.flat)-1, 0))
	moved := row != e.cursor
	e.cursor = row
	e.scrollToCursor()
	if moved {
		e.queue(event.TypeCursorMoved, event.CursorMovedData{Row: row, ID: e.selectedID()})
	}
}

// MoveCursor moves the selection by delta rows, clamped to the view.
func (e *Editor) MoveCursor(delta int) {
	e.update(func() { e.setCursor(e.cursor + delta) })
}

// PageDown moves the selection one page down.
func (e *Editor) PageDown() {
	e.update(func() { e.setCursor(e.cursor + e.pageSize()) })
}

// PageUp moves the selection one page up.
func (e *Editor) PageUp() {
	e.update(func() { e.setCursor(e.cursor - e.pageSize()) })
}

func (e *Editor) pageSize() int {
	if e.viewH > 1 {
		return e.viewH - 1
	}
	return e.opts.PageSize
}

// Home selects the first row.
func (e *Editor) Home() {
	e.update(func() { e.setCursor(0) })
}

// End selects the last row.
func (e *Editor) End() {
	e.update(func() { e.setCursor(len(e.flat) - 1) })
}

// JumpToParent selects the parent of the selected node. It returns false
// for top-level nodes.
func (e *Editor) JumpToParent() bool {
	var ok bool
	e.update(func() {
		if e.cursor >= len(e.flat) {
			return
		}
		parent := e.flat[e.cursor].ParentID
		if parent == tree.NoParent {
			return
		}
		ok = e.selectVisible(parent)
	})
	return ok
}

func (e *Editor) selectVisible(id tree.ID) bool {
	for i, fn := range e.flat {
		if fn.ID() == id {
			e.setCursor(i)
			return true
		}
	}
	return false
}

// SelectID selects the node with id, expanding its ancestors if needed.
func (e *Editor) SelectID(id tree.ID) bool {
	var ok bool
	e.update(func() {
		ancestors := tree.ParentNodes(e.history.Present(), id)
		if _, found := tree.FindByID(e.history.Present(), id); !found {
			return
		}
		expanded := false
		for _, a := range ancestors {
			if e.collapsed.Has(a) {
				e.collapsed.Remove(a)
				expanded = true
			}
		}
		if expanded {
			e.flat = tree.Flatten(e.history.Present(), e.collapsed)
			e.queue(event.TypeTreeChanged, event.TreeChangedData{Reason: "expand", Count: tree.Count(e.history.Present())})
		}
		ok = e.selectVisible(id)
	})
	return ok
}

// ToggleCollapse collapses or expands the selected node. Leaves are left
// alone. It returns false when nothing changed.
func (e *Editor) ToggleCollapse() bool {
	var ok bool
	e.update(func() {
		if e.cursor >= len(e.flat) {
			return
		}
		fn := e.flat[e.cursor]
		if len(fn.Node.Children) == 0 {
			return
		}
		e.setCollapsed(e.collapsed.Toggle(fn.ID()), fn.ID(), "collapse")
		ok = true
	})
	return ok
}

// Collapse collapses the selected node, or selects its parent when it is a
// leaf or already collapsed.
func (e *Editor) Collapse() {
	e.update(func() {
		if e.cursor >= len(e.flat) {
			return
		}
		fn := e.flat[e.cursor]
		if len(fn.Node.Children) > 0 && !e.collapsed.Has(fn.ID()) {
			next := e.collapsed.Clone()
			next.Add(fn.ID())
			e.setCollapsed(next, fn.ID(), "collapse")
			return
		}
		if fn.ParentID != tree.NoParent {
			e.selectVisible(fn.ParentID)
		}
	})
}

// Expand expands the selected node, or moves to its first child when it is
// already expanded.
func (e *Editor) Expand() {
	e.update(func() {
		if e.cursor >= len(e.flat) {
			return
		}
		fn := e.flat[e.cursor]
		if len(fn.Node.Children) == 0 {
			return
		}
		if e.collapsed.Has(fn.ID()) {
			next := e.collapsed.Clone()
			next.Remove(fn.ID())
			e.setCollapsed(next, fn.ID(), "expand")
			return
		}
		e.setCursor(e.cursor + 1)
	})
}

// CollapseAll collapses every node that has children.
func (e *Editor) CollapseAll() {
	e.update(func() {
		present := e.history.Present()
		sel := e.selectedID()
		if path := tree.NodePath(present, sel); len(path) > 0 {
			sel = path[0]
		}
		e.setCollapsed(tree.NewIDSet(tree.CollapsibleIDs(present)...), sel, "collapse-all")
	})
}

// ExpandAll clears the collapsed set.
func (e *Editor) ExpandAll() {
	e.update(func() {
		e.setCollapsed(tree.NewIDSet(), e.selectedID(), "expand-all")
	})
}

func (e *Editor) setCollapsed(set tree.IDSet, selectID tree.ID, reason string) {
	before := e.cursor
	e.collapsed = set
	e.refresh(selectID)
	e.queue(event.TypeTreeChanged, event.TreeChangedData{Reason: reason, Count: tree.Count(e.history.Present())})
	if e.cursor != before {
		e.queue(event.TypeCursorMoved, event.CursorMovedData{Row: e.cursor, ID: e.selectedID()})
	}
}
