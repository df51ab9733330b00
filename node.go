package oidtree

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a child lookup finds no child with the
// requested component.
var ErrNotFound = errors.New("oid component not found")

// Node is one position in the OID tree.
//
// A Node is immutable once it has been created: its path, name, module and
// value never change, and children are only ever added. Accessors that
// return slices return copies.
type Node struct {
	path   []uint32 // nil for the root sentinel
	name   string
	module string
	value  uint32

	parent  *Node
	ordinal int // position in parent's registration order

	children map[uint32]*Node
	order    []uint32 // child keys in registration order
}

// NewRoot returns the root sentinel of a new tree. The root has no path,
// no name and no module; it exists only as an insertion anchor.
func NewRoot() *Node {
	return &Node{children: make(map[uint32]*Node)}
}

// NewNode creates a detached node whose path is parentPath followed by
// value. parentPath is copied; a nil or empty parentPath yields a
// single-component path.
func NewNode(parentPath []uint32, name, module string, value uint32) *Node {
	return &Node{
		path:     appendArc(parentPath, value),
		name:     name,
		module:   module,
		value:    value,
		children: make(map[uint32]*Node),
	}
}

// Name returns the declared name. Empty for the root.
func (n *Node) Name() string { return n.name }

// Module returns the name of the module that declared the node.
func (n *Node) Module() string { return n.module }

// Value returns the last component of the node's path.
func (n *Node) Value() uint32 { return n.value }

// Parent returns the node this node is registered under, or nil for the
// root and for detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n is a root sentinel.
func (n *Node) IsRoot() bool { return len(n.path) == 0 }

// Depth returns the number of components in the node's path.
func (n *Node) Depth() int { return len(n.path) }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.order) }

// NumericPath returns the full OID of the node.
// The returned slice is a copy; modifications do not affect the Node.
func (n *Node) NumericPath() []uint32 {
	return clonePath(n.path)
}

// OID returns the dotted form of the node's path, e.g. "1.3.6.1.2.1".
func (n *Node) OID() string {
	return FormatPath(n.path)
}

// TextualForm returns "MODULE::name".
func (n *Node) TextualForm() string {
	return n.module + "::" + n.name
}

func (n *Node) String() string {
	if n.IsRoot() {
		return "<root>"
	}
	return n.TextualForm() + " (" + n.OID() + ")"
}

// Children returns the child nodes in the order they were registered.
// The returned slice is a copy.
func (n *Node) Children() []*Node {
	children := make([]*Node, 0, len(n.order))
	for _, k := range n.order {
		children = append(children, n.children[k])
	}
	return children
}

// ChildByLastComponent returns the child whose path ends in v.
// Returns an error wrapping ErrNotFound if there is no such child.
func (n *Node) ChildByLastComponent(v uint32) (*Node, error) {
	if child, ok := n.children[v]; ok {
		return child, nil
	}
	if n.IsRoot() {
		return nil, fmt.Errorf("%w: %d at top level", ErrNotFound, v)
	}
	return nil, fmt.Errorf("%w: %d under %s", ErrNotFound, v, n.OID())
}

// AddChild registers child under its own value. It is a no-op returning
// false when that value is already taken or when child is already
// registered elsewhere; an existing child is never replaced.
func (n *Node) AddChild(child *Node) bool {
	if child == nil || child.parent != nil {
		return false
	}
	if _, ok := n.children[child.value]; ok {
		return false
	}
	if n.children == nil {
		n.children = make(map[uint32]*Node)
	}
	child.parent = n
	child.ordinal = len(n.order)
	n.children[child.value] = child
	n.order = append(n.order, child.value)
	return true
}

// lineage returns the chain of nodes from the topmost ancestor down to n.
func (n *Node) lineage() []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// precedes reports whether a is visited before b in a depth-first,
// pre-order walk that follows child registration order.
func precedes(a, b *Node) bool {
	la, lb := a.lineage(), b.lineage()
	for i := 0; i < len(la) && i < len(lb); i++ {
		if la[i] != lb[i] {
			return la[i].ordinal < lb[i].ordinal
		}
	}
	// One is an ancestor of the other; ancestors come first.
	return len(la) < len(lb)
}
