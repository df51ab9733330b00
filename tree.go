package oidtree

import "iter"

// Tree is an OID tree with lookup indices that are kept up to date as
// declarations are inserted.
//
// Tree is not safe for concurrent mutation. Once construction is finished
// it is safe for concurrent read access from any number of goroutines.
type Tree struct {
	root *Node

	// Lookup indices (maintained by Insert)
	nameIndex map[string][]*Node // "sysDescr" -> nodes in registration order
	qualIndex map[string]*Node   // "SNMPv2-MIB::sysDescr" -> first node registered
	oidIndex  map[string]*Node   // "1.3.6.1.2.1.1.1" -> node
}

// NewTree returns an empty tree holding only the root sentinel.
func NewTree() *Tree {
	root := NewRoot()
	return &Tree{
		root:      root,
		nameIndex: map[string][]*Node{"": {root}},
		qualIndex: make(map[string]*Node),
		oidIndex:  make(map[string]*Node),
	}
}

// Root returns the root sentinel.
//
// Nodes added to the root's subtree directly through AddChild are not
// indexed by the Tree; use Insert.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of nodes, excluding the root.
func (t *Tree) Len() int { return len(t.oidIndex) }

// Insert attaches d to the tree. It behaves exactly like the package-level
// Insert on t.Root(), including which of several same-named nodes receives
// the child, but finds the parent through the name index instead of
// walking the tree.
func (t *Tree) Insert(d Declaration) (*Node, Outcome) {
	parent := t.firstNamed(d.ParentName)
	if parent == nil {
		return nil, OutcomeUnresolvedParent
	}
	n, outcome := attach(parent, d)
	if outcome == OutcomeInserted {
		t.index(n)
	}
	return n, outcome
}

// firstNamed returns the node named name that a depth-first, pre-order walk
// from the root reaches first.
func (t *Tree) firstNamed(name string) *Node {
	var first *Node
	for _, n := range t.nameIndex[name] {
		if first == nil || precedes(n, first) {
			first = n
		}
	}
	return first
}

func (t *Tree) index(n *Node) {
	t.nameIndex[n.name] = append(t.nameIndex[n.name], n)
	if _, ok := t.qualIndex[n.TextualForm()]; !ok {
		t.qualIndex[n.TextualForm()] = n
	}
	t.oidIndex[n.OID()] = n
}

// NodeByOID looks up a node by dotted OID string (e.g., "1.3.6.1.2.1.1.1").
// Returns nil if not found.
func (t *Tree) NodeByOID(oid string) *Node {
	arcs, err := ParseOID(oid)
	if err != nil || arcs == nil {
		return nil
	}
	return t.oidIndex[FormatPath(arcs)]
}

// NodeByPath looks up a node by OID arc values.
// Returns nil if not found.
func (t *Tree) NodeByPath(path []uint32) *Node {
	if len(path) == 0 {
		return nil
	}
	node, suffix := t.NodeByPrefix(path)
	if node == nil || len(suffix) > 0 {
		return nil
	}
	return node
}

// NodeByPrefix finds the node with the longest matching OID prefix.
// Returns the matching node and the unmatched suffix (instance index).
// Returns (nil, nil) if no prefix matches at all.
//
// This is useful for mapping SNMP response OIDs back to MIB definitions,
// since response OIDs include instance suffixes (e.g., sysName.0 or ifDescr.1).
func (t *Tree) NodeByPrefix(path []uint32) (node *Node, suffix []uint32) {
	current := t.root
	matched := 0
	for _, arc := range path {
		child, ok := current.children[arc]
		if !ok {
			break
		}
		current = child
		matched++
	}
	if matched == 0 {
		return nil, nil
	}
	if matched < len(path) {
		return current, clonePath(path[matched:])
	}
	return current, nil
}

// NodesByName returns all nodes with the given name in registration order.
// Multiple nodes may share the same name (defined in different modules).
func (t *Tree) NodesByName(name string) []*Node {
	if name == "" {
		return nil
	}
	nodes := t.nameIndex[name]
	if len(nodes) == 0 {
		return nil
	}
	result := make([]*Node, len(nodes))
	copy(result, nodes)
	return result
}

// NodeByQualifiedName looks up "MODULE::name" (e.g., "SNMPv2-MIB::sysDescr").
func (t *Tree) NodeByQualifiedName(module, name string) *Node {
	return t.qualIndex[module+"::"+name]
}

// Walk traverses the tree depth-first, pre-order, starting at the root's
// children. Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(*Node) bool) {
	for _, child := range t.root.Children() {
		walk(child, fn)
	}
}

func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, k := range n.order {
		walk(n.children[k], fn)
	}
}

// All returns an iterator over every node except the root, in depth-first
// pre-order.
func (t *Tree) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stop := false
		t.Walk(func(n *Node) bool {
			if stop {
				return false
			}
			if !yield(n) {
				stop = true
				return false
			}
			return true
		})
	}
}

// Nodes returns every node except the root in depth-first pre-order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, t.Len())
	for n := range t.All() {
		nodes = append(nodes, n)
	}
	return nodes
}
