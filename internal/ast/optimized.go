package ast

import "github.com/JrodM/a-tree-go/internal/predicates"

// OptimizedNode is the NOT-free tree produced by Node.Optimize: And, Or,
// or a leaf predicate (possibly already structurally negated).
type OptimizedNode struct {
	isValue   bool
	operator  Operator
	left      *OptimizedNode
	right     *OptimizedNode
	predicate predicates.Predicate
}

func NewOptimizedAnd(left, right *OptimizedNode) *OptimizedNode {
	return &OptimizedNode{operator: And, left: left, right: right}
}

func NewOptimizedOr(left, right *OptimizedNode) *OptimizedNode {
	return &OptimizedNode{operator: Or, left: left, right: right}
}

func NewOptimizedValue(predicate predicates.Predicate) *OptimizedNode {
	return &OptimizedNode{isValue: true, predicate: predicate}
}

func (n *OptimizedNode) IsValue() bool                   { return n.isValue }
func (n *OptimizedNode) Operator() Operator               { return n.operator }
func (n *OptimizedNode) Left() *OptimizedNode             { return n.left }
func (n *OptimizedNode) Right() *OptimizedNode            { return n.right }
func (n *OptimizedNode) Predicate() predicates.Predicate { return n.predicate }

// ID is the 64-bit expression id, built from the canonical predicate hash
// at the leaves and combined with a deliberately commutative operation per
// operator: wrapping multiplication for AND, wrapping addition for OR.
// Two structurally equivalent sub-expressions always produce the same id;
// this is not a perfect hash (adversarial collisions are possible across
// operators) and is an accepted, documented tradeoff, not a defect.
func (n *OptimizedNode) ID() uint64 {
	if n.isValue {
		return n.predicate.ID()
	}
	left, right := n.left.ID(), n.right.ID()
	if n.operator == And {
		return left * right
	}
	return left + right
}

// Cost estimates evaluation cost bottom-up. AND nodes carry a smaller
// fixed bias than OR (+50 vs +60): propagation-on-demand makes an AND
// more likely to short-circuit to false without evaluating its non-access
// child, so AND is treated as cheaper overall when ordering siblings.
func (n *OptimizedNode) Cost() uint64 {
	if n.isValue {
		return n.predicate.Cost()
	}
	if n.operator == And {
		return n.left.Cost() + n.right.Cost() + 50
	}
	return n.left.Cost() + n.right.Cost() + 60
}
