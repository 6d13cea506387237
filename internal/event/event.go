package event

import "github.com/bethropolis/grove/internal/tree"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Outline events
	TypeTreeChanged    // forest or collapsed set changed
	TypeHistoryChanged // undo/redo availability changed
	TypeCursorMoved    // selection moved to another row
	TypeDocumentLoaded
	TypeDocumentSaved
	TypeExternalChange // document changed on disk

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeTreeChanged:    "tree-changed",
	TypeHistoryChanged: "history-changed",
	TypeCursorMoved:    "cursor-moved",
	TypeDocumentLoaded: "document-loaded",
	TypeDocumentSaved:  "document-saved",
	TypeExternalChange: "external-change",
	TypeAppReady:       "app-ready",
	TypeAppQuit:        "app-quit",
	TypeThemeChanged:   "theme-changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// TreeChangedData describes a change to the visible outline.
type TreeChangedData struct {
	Reason string // e.g. "indent", "undo", "collapse"
	Count  int    // total nodes after the change
}

// HistoryChangedData carries the undo and redo depth.
type HistoryChangedData struct {
	Undo, Redo int
}

// CursorMovedData contains the newly selected node.
type CursorMovedData struct {
	Row int
	ID  tree.ID
}

// DocumentData names the file that was loaded, saved or changed on disk.
type DocumentData struct {
	FilePath string
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}
