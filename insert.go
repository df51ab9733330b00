package oidtree

// Declaration is a flat MIB declaration: a named node, the module that
// declares it, its component value and the name of the node it hangs off.
//
// An empty ParentName refers to the root sentinel.
type Declaration struct {
	Name       string
	Module     string
	Value      uint32
	ParentName string
}

// Outcome is the result of inserting a single declaration.
type Outcome uint8

const (
	// OutcomeInserted means a new node was created and registered.
	OutcomeInserted Outcome = iota
	// OutcomeDuplicate means the parent already had a child with the
	// declared value. The existing child is kept.
	OutcomeDuplicate
	// OutcomeUnresolvedParent means no node carries the declared parent
	// name. Nothing was changed.
	OutcomeUnresolvedParent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeUnresolvedParent:
		return "unresolved-parent"
	default:
		return "unknown"
	}
}

// Insert attaches d under the first node named d.ParentName found by a
// depth-first, pre-order walk from root (root included). Children are
// visited in registration order and the walk stops at the first match,
// even when other nodes share the name.
//
// On success the new node is returned with OutcomeInserted. If the parent
// already has a child with d.Value, that child is returned with
// OutcomeDuplicate. If no node matches, Insert returns nil and
// OutcomeUnresolvedParent and the tree is unchanged.
//
// Insert does not maintain the indices of a Tree; use Tree.Insert for trees
// built through a Tree.
func Insert(root *Node, d Declaration) (*Node, Outcome) {
	if root == nil {
		return nil, OutcomeUnresolvedParent
	}
	parent := findFirst(root, d.ParentName)
	if parent == nil {
		return nil, OutcomeUnresolvedParent
	}
	return attach(parent, d)
}

func findFirst(n *Node, name string) *Node {
	if n.name == name {
		return n
	}
	for _, k := range n.order {
		if found := findFirst(n.children[k], name); found != nil {
			return found
		}
	}
	return nil
}

func attach(parent *Node, d Declaration) (*Node, Outcome) {
	if existing, ok := parent.children[d.Value]; ok {
		return existing, OutcomeDuplicate
	}
	child := NewNode(parent.path, d.Name, d.Module, d.Value)
	parent.AddChild(child)
	return child, OutcomeInserted
}
