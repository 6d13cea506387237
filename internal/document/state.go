package document

import (
	"os"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/tree"
	"github.com/goccy/go-json"
)

// StateVersion is the current schema version of the view-state sidecar.
const StateVersion = 1

// ViewState is the per-document view state kept beside the outline:
//
//	{
//	  "version": 1,
//	  "collapsed": ["2", "4"],
//	  "cursor": "3"
//	}
//
// Ids that no longer exist in the document are ignored by the reader.
type ViewState struct {
	Version   int       `json:"version"`
	Collapsed []tree.ID `json:"collapsed"`
	Cursor    tree.ID   `json:"cursor,omitempty"` // selected node id
}

// DefaultViewState has nothing collapsed and no selection.
func DefaultViewState() ViewState {
	return ViewState{Version: StateVersion, Collapsed: []tree.ID{}}
}

// StatePath returns the sidecar path for the document at docPath.
func StatePath(docPath string) string {
	return docPath + ".state.json"
}

// LoadState reads the sidecar at path. A missing or unreadable file yields
// the default state.
func LoadState(path string) ViewState {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultViewState()
	}
	var st ViewState
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warnf("Document: Invalid view state %s, using defaults: %v", path, err)
		return DefaultViewState()
	}
	if st.Version > StateVersion {
		logger.Warnf("Document: View state %s has newer version %d, using defaults", path, st.Version)
		return DefaultViewState()
	}
	if st.Collapsed == nil {
		st.Collapsed = []tree.ID{}
	}
	return st
}

// SaveState writes st to path.
func SaveState(path string, st ViewState) error {
	st.Version = StateVersion
	if st.Collapsed == nil {
		st.Collapsed = []tree.ID{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, append(data, '\n'))
}

// CollapsedSet returns st.Collapsed restricted to ids present in forest.
func (st ViewState) CollapsedSet(forest []*tree.Node) tree.IDSet {
	set := tree.NewIDSet()
	for _, id := range st.Collapsed {
		if _, ok := tree.FindByID(forest, id); ok {
			set.Add(id)
		}
	}
	return set
}
