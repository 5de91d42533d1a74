// Package ast defines the untyped boolean expression tree produced by
// parsing (And/Or/Not/leaf predicate) and the zero-suppression optimizer
// that rewrites it into a NOT-free tree ready for insertion into the DAG.
package ast

import "github.com/JrodM/a-tree-go/internal/predicates"

// Operator discriminates And/Or nodes, shared by Node and OptimizedNode.
type Operator int

const (
	And Operator = iota
	Or
)

func (o Operator) String() string {
	if o == And {
		return "AND"
	}
	return "OR"
}

// Node is the raw parse-tree shape: And, Or, Not, or a leaf predicate.
type Node struct {
	isNot     bool
	isValue   bool
	operator  Operator
	left      *Node
	right     *Node
	predicate predicates.Predicate
}

func NewAnd(left, right *Node) *Node {
	return &Node{operator: And, left: left, right: right}
}

func NewOr(left, right *Node) *Node {
	return &Node{operator: Or, left: left, right: right}
}

func NewNot(value *Node) *Node {
	return &Node{isNot: true, left: value}
}

func NewValue(predicate predicates.Predicate) *Node {
	return &Node{isValue: true, predicate: predicate}
}

// Optimize runs the zero-suppression filter, eliminating every NOT node by
// pushing negation down to the leaves (De Morgan's laws) and negating
// predicates structurally once negation reaches a leaf.
func (n *Node) Optimize() *OptimizedNode {
	return n.zeroSuppress(false)
}

func (n *Node) zeroSuppress(negate bool) *OptimizedNode {
	switch {
	case n.isValue:
		if negate {
			return NewOptimizedValue(n.predicate.Negate())
		}
		return NewOptimizedValue(n.predicate)
	case n.isNot:
		return n.left.zeroSuppress(!negate)
	case n.operator == And:
		if negate {
			return NewOptimizedOr(n.left.zeroSuppress(true), n.right.zeroSuppress(true))
		}
		return NewOptimizedAnd(n.left.zeroSuppress(false), n.right.zeroSuppress(false))
	default: // Or
		if negate {
			return NewOptimizedAnd(n.left.zeroSuppress(true), n.right.zeroSuppress(true))
		}
		return NewOptimizedOr(n.left.zeroSuppress(false), n.right.zeroSuppress(false))
	}
}
