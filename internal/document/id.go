package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// flexID accepts a node id written as either a string or an integer, so
// `1` and `"1"` decode to the same id. It always encodes as a string.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("node id must be a string or number, got %s", data)
	}
	*id = flexID(n.String())
	return nil
}

func (id *flexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: node id must be a scalar", value.Line)
	}
	*id = flexID(value.Value)
	return nil
}

func (id *flexID) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*id = flexID(x)
	case int64:
		*id = flexID(strconv.FormatInt(x, 10))
	default:
		return fmt.Errorf("node id must be a string or integer, got %T", v)
	}
	return nil
}
