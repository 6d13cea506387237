// Package document reads and writes outline files. The format is chosen by
// file extension: .json, .yaml/.yml or .toml.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/tree"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk outline encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrDuplicateID       = errors.New("duplicate node id")
	ErrEmptyID           = errors.New("empty node id")
)

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Document is a titled forest.
type Document struct {
	Title string
	Nodes []*tree.Node
}

type fileRecord struct {
	Title string       `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Nodes []nodeRecord `json:"nodes" yaml:"nodes" toml:"nodes"`
}

type nodeRecord struct {
	ID          flexID       `json:"id" yaml:"id" toml:"id"`
	Label       string       `json:"label" yaml:"label" toml:"label"`
	Children    []nodeRecord `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	Disabled    bool         `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Collapsible bool         `json:"collapsible,omitempty" yaml:"collapsible,omitempty" toml:"collapsible,omitempty"`
}

// Load reads and validates the outline at path.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debugf("Document: Loaded %s (%d nodes)", path, tree.Count(doc.Nodes))
	return doc, nil
}

// Decode parses data in the given format and validates the node ids.
func Decode(data []byte, format Format) (*Document, error) {
	var rec fileRecord
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &rec)
		if err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			logger.Warnf("Document: Unknown keys ignored: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	doc := &Document{Title: rec.Title, Nodes: toNodes(rec.Nodes)}
	if err := Validate(doc.Nodes); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks that every id is non-empty and unique.
func Validate(forest []*tree.Node) error {
	seen := make(map[tree.ID]struct{})
	var walk func(nodes []*tree.Node, parent tree.ID) error
	walk = func(nodes []*tree.Node, parent tree.ID) error {
		for i, n := range nodes {
			if n.ID == tree.NoParent {
				if parent == tree.NoParent {
					return fmt.Errorf("%w: top-level node %d", ErrEmptyID, i)
				}
				return fmt.Errorf("%w: child %d of %q", ErrEmptyID, i, parent)
			}
			if _, dup := seen[n.ID]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID)
			}
			seen[n.ID] = struct{}{}
			if err := walk(n.Children, n.ID); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(forest, tree.NoParent)
}

// Encode renders doc in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	rec := fileRecord{Title: doc.Title, Nodes: toRecords(doc.Nodes)}
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// Save writes doc to path in the format implied by its extension. The file
// is replaced atomically.
func Save(path string, doc *Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	logger.Debugf("Document: Saved %s (%d nodes)", path, tree.Count(doc.Nodes))
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it over
// path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func toNodes(recs []nodeRecord) []*tree.Node {
	if len(recs) == 0 {
		return nil
	}
	nodes := make([]*tree.Node, len(recs))
	for i, r := range recs {
		nodes[i] = &tree.Node{
			ID:          tree.ID(r.ID),
			Label:       r.Label,
			Children:    toNodes(r.Children),
			Disabled:    r.Disabled,
			Collapsible: r.Collapsible,
		}
	}
	return nodes
}

func toRecords(nodes []*tree.Node) []nodeRecord {
	recs := make([]nodeRecord, len(nodes))
	for i, n := range nodes {
		recs[i] = nodeRecord{
			ID:          flexID(n.ID),
			Label:       n.Label,
			Disabled:    n.Disabled,
			Collapsible: n.Collapsible,
		}
		if len(n.Children) > 0 {
			recs[i].Children = toRecords(n.Children)
		}
	}
	return recs
}
