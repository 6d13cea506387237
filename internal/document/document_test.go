package document

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bethropolis/grove/internal/tree"
)

func sampleDoc() *Document {
	return &Document{
		Title: "Groceries",
		Nodes: []*tree.Node{
			{ID: "1", Label: "Fruit", Collapsible: true, Children: []*tree.Node{
				{ID: "1-1", Label: "Apples"},
				{ID: "1-2", Label: "Pears", Disabled: true},
			}},
			{ID: "2", Label: "Bread"},
		},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/b.YAML", FormatYAML, false},
		{"c.yml", FormatYAML, false},
		{"d.toml", FormatTOML, false},
		{"e.txt", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFor(%q): expected ErrUnsupportedFormat, got %v", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}
}

func TestSaveLoadEachFormat(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "outline"+ext)
			want := sampleDoc()
			if err := Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
			}
		})
	}
}

func TestDecodeNumericIDs(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatJSON, `{"nodes":[{"id":1,"label":"a","children":[{"id":"2","label":"b"}]}]}`},
		{FormatYAML, "nodes:\n  - id: 1\n    label: a\n    children:\n      - id: \"2\"\n        label: b\n"},
		{FormatTOML, "[[nodes]]\nid = 1\nlabel = \"a\"\n[[nodes.children]]\nid = \"2\"\nlabel = \"b\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			doc, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := tree.NodePath(doc.Nodes, "2"); !reflect.DeepEqual(got, []tree.ID{"1", "2"}) {
				t.Errorf("expected path [1 2], got %v", got)
			}
		})
	}
}

func TestDecodeRejectsBadIDs(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"duplicate across levels", `{"nodes":[{"id":"a","label":"x","children":[{"id":"a","label":"y"}]}]}`, ErrDuplicateID},
		{"duplicate number and string", `{"nodes":[{"id":7,"label":"x"},{"id":"7","label":"y"}]}`, ErrDuplicateID},
		{"empty top level", `{"nodes":[{"id":"","label":"x"}]}`, ErrEmptyID},
		{"missing child id", `{"nodes":[{"id":"a","label":"x","children":[{"label":"y"}]}]}`, ErrEmptyID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeRejectsObjectID(t *testing.T) {
	if _, err := Decode([]byte(`{"nodes":[{"id":{"x":1},"label":"x"}]}`), FormatJSON); err == nil {
		t.Error("expected error for object id")
	}
	if _, err := Decode([]byte("nodes:\n  - id: [1]\n    label: x\n"), FormatYAML); err == nil {
		t.Error("expected error for sequence id")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(filepath.Join(dir, "notes.md")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("expected error naming the file, got %v", err)
	}
}

func TestSaveKeepsPermissionsAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.json")
	if err := os.WriteFile(path, []byte(`{"nodes":[]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, sampleDoc()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the document in %s, got %d entries", dir, len(entries))
	}
}

func TestViewState(t *testing.T) {
	dir := t.TempDir()
	path := StatePath(filepath.Join(dir, "outline.yaml"))
	if filepath.Base(path) != "outline.yaml.state.json" {
		t.Errorf("unexpected sidecar name %s", path)
	}

	if st := LoadState(path); st.Version != StateVersion || len(st.Collapsed) != 0 {
		t.Errorf("expected defaults for missing sidecar, got %+v", st)
	}

	want := ViewState{Collapsed: []tree.ID{"1", "gone"}, Cursor: "1-1"}
	if err := SaveState(path, want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	got := LoadState(path)
	if got.Version != StateVersion || got.Cursor != "1-1" || !reflect.DeepEqual(got.Collapsed, want.Collapsed) {
		t.Errorf("unexpected state %+v", got)
	}

	set := got.CollapsedSet(sampleDoc().Nodes)
	if !set.Has("1") || set.Has("gone") {
		t.Errorf("expected stale ids dropped, got %v", set.Slice())
	}

	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if st := LoadState(path); len(st.Collapsed) != 0 || st.Cursor != "" {
		t.Errorf("expected defaults for corrupt sidecar, got %+v", st)
	}
}

func TestWriteOutline(t *testing.T) {
	var sb strings.Builder
	forest := sampleDoc().Nodes
	if err := WriteOutline(&sb, forest, nil, 2); err != nil {
		t.Fatal(err)
	}
	want := "- Fruit\n  - Apples\n  - (Pears)\n- Bread\n"
	if sb.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, sb.String())
	}

	sb.Reset()
	_ = WriteOutline(&sb, forest, tree.NewIDSet("1", "2"), 2)
	want = "- Fruit …\n- Bread\n"
	if sb.String() != want {
		t.Errorf("collapsed: expected:\n%s\ngot:\n%s", want, sb.String())
	}

	if got := OutlineText(forest[0], 4); got != "- Fruit\n    - Apples\n    - (Pears)\n" {
		t.Errorf("unexpected subtree text %q", got)
	}
}
