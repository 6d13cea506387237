// Package outline holds the state of an open outline document: the forest
// and its undo history, the collapsed set, the cursor and the viewport.
//
// Every structural edit is one history entry. Collapse state is view state
// and never enters the history.
package outline

import (
	"errors"
	"sync"

	"github.com/bethropolis/grove/internal/document"
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/history"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/tree"
)

var (
	ErrNoSelection = errors.New("no node selected")
	ErrNoClipboard = errors.New("clipboard unavailable")
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPageSize    = 10
	DefaultIndentWidth = 2
	DefaultScrollOff   = 2
)

// Options configures an Editor.
type Options struct {
	HistoryLimit int // 0 means unlimited
	PageSize     int
	IndentWidth  int // spaces per depth level, on screen and in yanked text
	ScrollOff    int
	StateFile    bool // read and write the view-state sidecar
	Events       *event.Manager
	Clipboard    Clipboard
}

// Editor is safe for concurrent use; the file watcher calls SyncExternal
// from its own goroutine.
type Editor struct {
	mu sync.Mutex

	path    string
	title   string
	history *history.History[[]*tree.Node]
	saved   []*tree.Node // forest as last loaded or saved

	collapsed tree.IDSet
	flat      []tree.FlattenedNode
	cursor    int
	viewportY int
	viewH     int

	opts    Options
	pending []event.Event
}

// New opens doc, which was read from path, in an editor. When StateFile is
// set the sidecar beside path restores the collapsed set and the cursor.
func New(path string, doc *document.Document, opts Options) *Editor {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = DefaultIndentWidth
	}
	if opts.ScrollOff < 0 {
		opts.ScrollOff = 0
	}
	if doc == nil {
		doc = &document.Document{}
	}

	e := &Editor{
		path:      path,
		title:     doc.Title,
		history:   history.New(doc.Nodes, history.WithLimit(opts.HistoryLimit)),
		saved:     doc.Nodes,
		collapsed: tree.NewIDSet(),
		opts:      opts,
	}

	var cursorID tree.ID
	if opts.StateFile && path != "" {
		st := document.LoadState(document.StatePath(path))
		e.collapsed = st.CollapsedSet(doc.Nodes)
		cursorID = st.Cursor
	}
	e.refresh(cursorID)
	logger.Debugf("Outline: Opened %q with %d nodes", path, tree.Count(doc.Nodes))
	return e
}

// update runs fn under the lock and then delivers the events fn queued, so
// handlers may call back into the editor.
func (e *Editor) update(fn func()) {
	e.mu.Lock()
	fn()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, ev := range pending {
		e.opts.Events.Dispatch(ev.Type, ev.Data)
	}
}

func (e *Editor) queue(t event.Type, data interface{}) {
	if e.opts.Events == nil {
		return
	}
	e.pending = append(e.pending, event.Event{Type: t, Data: data})
}

// refresh rebuilds the flattened view and puts the cursor on selectID when
// it is visible, otherwise keeps the cursor row within bounds.
func (e *Editor) refresh(selectID tree.ID) {
	e.flat = tree.Flatten(e.history.Present(), e.collapsed)
	if selectID != tree.NoParent {
		for i, fn := range e.flat {
			if fn.ID() == selectID {
				e.cursor = i
				e.scrollToCursor()
				return
			}
		}
	}
	e.cursor = min(max(e.cursor, 0), max(len(e.flat)-1, 0))
	e.scrollToCursor()
}

func (e *Editor) selectedID() tree.ID {
	if e.cursor < 0 || e.cursor >= len(e.flat) {
		return tree.NoParent
	}
	return e.flat[e.cursor].ID()
}

// Path returns the document path.
func (e *Editor) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// IndentWidth returns the number of columns per depth level.
func (e *Editor) IndentWidth() int {
	return e.opts.IndentWidth
}

// Title returns the document title.
func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Forest returns the present forest. Callers must not modify it.
func (e *Editor) Forest() []*tree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Present()
}

// Rows returns a copy of the visible rows.
func (e *Editor) Rows() []tree.FlattenedNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]tree.FlattenedNode, len(e.flat))
	copy(out, e.flat)
	return out
}

// Cursor returns the selected row index.
func (e *Editor) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Selected returns the selected row.
func (e *Editor) Selected() (tree.FlattenedNode, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor < 0 || e.cursor >= len(e.flat) {
		return tree.FlattenedNode{}, false
	}
	return e.flat[e.cursor], true
}

// Collapsed returns a copy of the collapsed set.
func (e *Editor) Collapsed() tree.IDSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collapsed.Clone()
}

// Count returns the total number of nodes, visible or not.
func (e *Editor) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return tree.Count(e.history.Present())
}

// Modified reports whether the forest differs from the last load or save.
func (e *Editor) Modified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modified()
}

func (e *Editor) modified() bool {
	return !tree.Equal(e.history.Present(), e.saved)
}

// HistoryDepth returns the number of available undo and redo steps.
func (e *Editor) HistoryDepth() (undo, redo int) {
	return e.history.Len()
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Document returns the present forest with the document title.
func (e *Editor) Document() *document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &document.Document{Title: e.title, Nodes: e.history.Present()}
}

// ViewState returns the collapsed set and selection for the sidecar.
func (e *Editor) ViewState() document.ViewState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewState()
}

func (e *Editor) viewState() document.ViewState {
	st := document.DefaultViewState()
	st.Collapsed = e.collapsed.Slice()
	st.Cursor = e.selectedID()
	return st
}
