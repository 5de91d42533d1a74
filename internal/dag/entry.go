// Package dag implements the A-Tree itself: an arena of L/I/R nodes
// de-duplicated by expression id, with cost-ordered children,
// access-child selection, insert/delete with use-count cascading, and
// level-ordered lazy search with a bitset result cache.
package dag

import (
	"github.com/JrodM/a-tree-go/internal/ast"
	"github.com/JrodM/a-tree-go/internal/predicates"
)

type nodeKind uint8

const (
	leafKind nodeKind = iota
	branchKind
)

// entry is one arena slot. Leaf and branch share the same struct shape
// (unused fields are simply zero) rather than a tagged interface, since
// every field here is a cheap scalar or slice and the kind tag alone
// determines which fields are meaningful.
//
// "Root" is not its own kind: a node is a root precisely when its
// subscriptions slice is non-empty, whether it is a standalone leaf, a
// plain branch that gained subscribers on later top-level reuse ("I-node
// promoted to dual role"), or a genuine no-parent top-level node. This is
// the "additional flag on Internal" encoding spec §9's design notes call
// out as one of the two acceptable ways to model root promotion.
type entry[T comparable] struct {
	id       uint64
	kind     nodeKind
	level    int
	cost     uint64
	useCount uint32

	subscriptions []T
	parents       []int

	// branch-only
	operator ast.Operator
	children [2]int // cheaper child first; children[0] is the AND access child

	// leaf-only
	predicate predicates.Predicate
}

func (e *entry[T]) isRoot() bool {
	return len(e.subscriptions) > 0
}
