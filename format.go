package oidtree

import (
	"strconv"
	"strings"

	"github.com/shivamMg/ppds/tree"
)

// FormatOID formats an OID value as a dotted string with optional name
// lookup: "1.3.6.1.2.1(mib-2)". The longest known prefix is named and the
// remaining instance suffix follows it: "1.3.6.1.2.1.1.5(sysName).0".
// If t is nil or no prefix is known, only the dotted form is returned.
func FormatOID(t *Tree, value []uint32) string {
	if len(value) == 0 {
		return ""
	}
	if t != nil {
		if node, suffix := t.NodeByPrefix(value); node != nil {
			var b strings.Builder
			b.WriteString(node.OID())
			b.WriteByte('(')
			b.WriteString(node.Name())
			b.WriteByte(')')
			for _, arc := range suffix {
				b.WriteByte('.')
				b.WriteString(strconv.FormatUint(uint64(arc), 10))
			}
			return b.String()
		}
	}
	return FormatPath(value)
}

// renderNode adapts a Node to the ppds tree printer.
type renderNode struct {
	n *Node
}

func (r renderNode) Data() interface{} {
	if r.n.IsRoot() {
		return "."
	}
	return r.n.Name() + "(" + strconv.FormatUint(uint64(r.n.Value()), 10) + ")"
}

func (r renderNode) Children() []tree.Node {
	children := r.n.Children()
	nodes := make([]tree.Node, len(children))
	for i, c := range children {
		nodes[i] = renderNode{c}
	}
	return nodes
}

// Render draws the subtree rooted at n, one node per line, labelling each
// node "name(value)". The root sentinel is drawn as ".".
func Render(n *Node) string {
	if n == nil {
		return ""
	}
	return tree.Sprint(renderNode{n})
}
