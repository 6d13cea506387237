package document

import (
	"bufio"
	"io"
	"strings"

	"github.com/bethropolis/grove/internal/tree"
)

// WriteOutline writes the flattened forest as an indented text outline,
// one node per line. Collapsed nodes end with " …" and hide their
// descendants; disabled nodes are wrapped in parentheses.
func WriteOutline(w io.Writer, forest []*tree.Node, collapsed tree.IDSet, indent int) error {
	bw := bufio.NewWriter(w)
	pad := strings.Repeat(" ", max(indent, 0))
	for _, fn := range tree.Flatten(forest, collapsed) {
		bw.WriteString(strings.Repeat(pad, fn.Depth))
		bw.WriteString("- ")
		if fn.Node.Disabled {
			bw.WriteString("(" + fn.Node.Label + ")")
		} else {
			bw.WriteString(fn.Node.Label)
		}
		if fn.Collapsed && len(fn.Node.Children) > 0 {
			bw.WriteString(" …")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// OutlineText renders one subtree, fully expanded, as WriteOutline would.
func OutlineText(n *tree.Node, indent int) string {
	var sb strings.Builder
	_ = WriteOutline(&sb, []*tree.Node{n}, nil, indent)
	return sb.String()
}
