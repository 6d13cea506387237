package wordcount

import (
	"testing"

	"github.com/bethropolis/grove/internal/plugin/plugintest"
	"github.com/bethropolis/grove/internal/tree"
)

func TestCount(t *testing.T) {
	forest := []*tree.Node{
		{ID: "1", Label: "Buy milk and eggs", Children: []*tree.Node{
			{ID: "2", Label: "Oat milk", Disabled: true, Children: []*tree.Node{
				{ID: "3", Label: "  "},
			}},
		}},
		{ID: "4", Label: "Call"},
	}
	got := Count(forest)
	want := Stats{Nodes: 4, Leaves: 2, Disabled: 1, Words: 7, Depth: 3}
	if got != want {
		t.Errorf("Count() = %+v, want %+v", got, want)
	}
	if got := Count(nil); got != (Stats{}) {
		t.Errorf("Count(nil) = %+v", got)
	}
}

func TestWCCommand(t *testing.T) {
	api := plugintest.New()
	api.Nodes = []*tree.Node{{ID: "1", Label: "one two"}}

	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	cmd, ok := api.Commands["wc"]
	if !ok {
		t.Fatal("wc command not registered")
	}
	if err := cmd(nil); err != nil {
		t.Fatal(err)
	}
	want := "Nodes: 1, Leaves: 1, Depth: 1, Words: 2, Disabled: 0"
	if got := api.LastMessage(); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	if err := New().Initialize(api); err == nil {
		t.Error("second registration of wc succeeded")
	}
}
