package outline

import (
	"errors"
	"fmt"

	"github.com/bethropolis/grove/internal/document"
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/tree"
)

// Save writes the present forest to the document path and, when enabled,
// the view state to its sidecar.
func (e *Editor) Save() error {
	var err error
	e.update(func() { err = e.saveLocked() })
	return err
}

// SaveAs changes the document path and saves there.
func (e *Editor) SaveAs(path string) error {
	if _, err := document.FormatFor(path); err != nil {
		return err
	}
	var err error
	e.update(func() {
		old := e.path
		e.path = path
		if err = e.saveLocked(); err != nil {
			e.path = old
		}
	})
	return err
}

func (e *Editor) saveLocked() error {
	if e.path == "" {
		return errors.New("no file name")
	}
	doc := &document.Document{Title: e.title, Nodes: e.history.Present()}
	if err := document.Save(e.path, doc); err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	e.saved = doc.Nodes
	if e.opts.StateFile {
		if err := document.SaveState(document.StatePath(e.path), e.viewState()); err != nil {
			logger.Warnf("Outline: Failed to write view state: %v", err)
		}
	}
	logger.Infof("Outline: Saved %s", e.path)
	e.queue(event.TypeDocumentSaved, event.DocumentData{FilePath: e.path})
	return nil
}

// SaveViewState writes only the sidecar. It is a no-op when the sidecar is
// disabled.
func (e *Editor) SaveViewState() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.opts.StateFile || e.path == "" {
		return nil
	}
	return document.SaveState(document.StatePath(e.path), e.viewState())
}

// Revert discards all unsaved edits and the whole undo history, returning
// to the forest as last loaded or saved.
func (e *Editor) Revert() bool {
	var ok bool
	e.update(func() {
		undo, redo := e.history.Len()
		if !e.modified() && undo == 0 && redo == 0 {
			return
		}
		sel := e.selectedID()
		e.history.Reset(e.saved)
		e.afterChange("revert", sel)
		ok = true
	})
	return ok
}

// SyncResult reports what SyncExternal did with a document read from disk.
type SyncResult int

const (
	// SyncUnchanged means the document matched the last saved forest, as
	// it does when the watcher reports the editor's own save.
	SyncUnchanged SyncResult = iota
	// SyncApplied means the document replaced the present.
	SyncApplied
	// SyncRefused means the document differed but unsaved edits were kept.
	SyncRefused
)

// SyncExternal adopts doc, re-read from disk, as the present without
// recording an undo entry. A doc equal to the last saved forest is ignored,
// and a different one is refused while there are unsaved edits.
func (e *Editor) SyncExternal(doc *document.Document) SyncResult {
	result := SyncUnchanged
	e.update(func() {
		if doc.Title == e.title && tree.Equal(doc.Nodes, e.saved) {
			return
		}
		if e.modified() {
			logger.Warnf("Outline: %s changed on disk; keeping unsaved edits", e.path)
			result = SyncRefused
			return
		}
		sel := e.selectedID()
		e.history.Sync(doc.Nodes)
		e.saved = doc.Nodes
		e.title = doc.Title
		e.afterChange("external", sel)
		e.queue(event.TypeExternalChange, event.DocumentData{FilePath: e.path})
		result = SyncApplied
	})
	return result
}

// Yank copies the selected subtree to the clipboard as an indented text
// outline.
func (e *Editor) Yank() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor >= len(e.flat) {
		return "", ErrNoSelection
	}
	if e.opts.Clipboard == nil {
		return "", ErrNoClipboard
	}
	text := document.OutlineText(e.flat[e.cursor].Node, e.opts.IndentWidth)
	if err := e.opts.Clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("writing clipboard: %w", err)
	}
	return text, nil
}
