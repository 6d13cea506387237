// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/grove/internal/plugin"
	"github.com/bethropolis/grove/internal/tree"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount adds the :wc command, which reports node, leaf and word counts
// and the outline depth.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Stats summarizes a forest.
type Stats struct {
	Nodes, Leaves, Disabled, Words int
	Depth                          int // levels; 0 for an empty forest
}

// Count walks every node of forest, collapsed or not.
func Count(forest []*tree.Node) Stats {
	var s Stats
	var walk func(nodes []*tree.Node, depth int)
	walk = func(nodes []*tree.Node, depth int) {
		for _, n := range nodes {
			s.Nodes++
			s.Depth = max(s.Depth, depth)
			s.Words += len(strings.Fields(n.Label))
			if n.Disabled {
				s.Disabled++
			}
			if len(n.Children) == 0 {
				s.Leaves++
			}
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 1)
	return s
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	s := Count(p.api.Forest())
	p.api.SetStatusMessage("Nodes: %d, Leaves: %d, Depth: %d, Words: %d, Disabled: %d",
		s.Nodes, s.Leaves, s.Depth, s.Words, s.Disabled)
	return nil
}
