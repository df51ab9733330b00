// Package oidtree assembles flat MIB declarations into an OID tree and
// answers queries against it.
//
// Each declaration names a node, the module that declares it, its numeric
// component and the name of its parent. Declarations arrive in any order;
// the tree resolves each one against the nodes already present and derives
// the node's full numeric path from its ancestors.
//
// # Quick Start
//
//	decls := []oidtree.Declaration{
//	    {Name: "iso", Module: "SNMPv2-SMI", Value: 1},
//	    {Name: "org", Module: "SNMPv2-SMI", Value: 3, ParentName: "iso"},
//	}
//	tree, report, err := oidtree.Build(ctx, decls, oidtree.BuildOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	node := tree.NodeByOID("1.3")
//	fmt.Println(node.TextualForm()) // "SNMPv2-SMI::org"
//
// # Insertion
//
// [Insert] places one declaration under the first node whose name equals
// the declaration's parent name, searching depth-first and pre-order from
// the root in child registration order. The root sentinel has an empty
// name, so declarations with an empty ParentName become top-level nodes.
// The outcome is always reported, never raised:
//
//   - [OutcomeInserted]: a new node was created
//   - [OutcomeDuplicate]: the parent already has a child at that value; the
//     existing child wins
//   - [OutcomeUnresolvedParent]: no node carries the parent name; nothing changed
//
// [Tree.Insert] gives the same results using a name index. [Build] and
// [Tree.InsertAll] re-drive unresolved declarations until no more progress
// is made, so forward references resolve regardless of stream order.
//
// # Sources
//
// Declarations can be read from YAML or JSON ([ParseYAML]), HCL
// ([ParseHCL]), a compact binary stream ([DecodeDeclarations]), or produced
// by a MIB parser compiled to WebAssembly ([NewPlugin]). [LoadFiles],
// [LoadDir] and [LoadFS] pick the decoder from the file extension.
//
// # Concurrency
//
// A [Tree] is NOT safe for concurrent mutation; build it from a single
// goroutine. Once built it IS safe for concurrent read access: nodes never
// change after creation and path accessors return copies.
//
// A [Plugin] is NOT safe for concurrent use.
//
// # Error Handling
//
// [Node.ChildByLastComponent] returns an error wrapping [ErrNotFound] when
// the component was never inserted. Source decoders return wrapped errors
// naming the offending file and declaration.
package oidtree
