package ast

import (
	"reflect"
	"testing"

	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/predicates"
)

func fixtureTable(t *testing.T) *attributes.Table {
	t.Helper()
	table, err := attributes.New([]attributes.Definition{attributes.Bool("private")})
	if err != nil {
		t.Fatalf("attributes.New failed: %v", err)
	}
	return table
}

func TestOptimizeEliminatesASingleNegation(t *testing.T) {
	table := fixtureTable(t)
	predicate, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	optimized := NewNot(NewValue(predicate)).Optimize()

	if !optimized.IsValue() {
		t.Fatalf("expected a leaf, got an internal node")
	}
	expected := predicate.Negate()
	if !reflect.DeepEqual(optimized.Predicate(), expected) {
		t.Errorf("expected negated predicate, got %+v", optimized.Predicate())
	}
}

func TestOptimizeEliminatesDoubleNegation(t *testing.T) {
	table := fixtureTable(t)
	predicate, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	optimized := NewNot(NewNot(NewValue(predicate))).Optimize()

	if !reflect.DeepEqual(optimized.Predicate(), predicate) {
		t.Errorf("expected original predicate after double negation, got %+v", optimized.Predicate())
	}
}

func TestOptimizeAppliesDeMorganToNegatedOr(t *testing.T) {
	table := fixtureTable(t)
	predicate, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	expr := NewNot(NewOr(NewValue(predicate), NewValue(predicate.Negate())))
	optimized := expr.Optimize()

	if optimized.IsValue() || optimized.Operator() != And {
		t.Fatalf("expected a top-level AND after negating an OR, got %+v", optimized)
	}
	if !reflect.DeepEqual(optimized.Left().Predicate(), predicate.Negate()) {
		t.Errorf("expected left child negated, got %+v", optimized.Left().Predicate())
	}
	if !reflect.DeepEqual(optimized.Right().Predicate(), predicate) {
		t.Errorf("expected right child double-negated back to original, got %+v", optimized.Right().Predicate())
	}
}

func TestLeaveUnnegatedAndAsIs(t *testing.T) {
	table := fixtureTable(t)
	predicate, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	expr := NewAnd(NewValue(predicate), NewValue(predicate))
	optimized := expr.Optimize()

	if optimized.IsValue() || optimized.Operator() != And {
		t.Fatalf("expected an AND node, got %+v", optimized)
	}
}

func TestExpressionIDIsCommutativePerOperator(t *testing.T) {
	table := fixtureTable(t)
	p, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}
	q := p.Negate()

	and1 := NewOptimizedAnd(NewOptimizedValue(p), NewOptimizedValue(q))
	and2 := NewOptimizedAnd(NewOptimizedValue(q), NewOptimizedValue(p))
	if and1.ID() != and2.ID() {
		t.Errorf("expected AND expression id to be commutative")
	}

	or1 := NewOptimizedOr(NewOptimizedValue(p), NewOptimizedValue(q))
	or2 := NewOptimizedOr(NewOptimizedValue(q), NewOptimizedValue(p))
	if or1.ID() != or2.ID() {
		t.Errorf("expected OR expression id to be commutative")
	}
}

func TestCostBiasesAndCheaperThanOr(t *testing.T) {
	table := fixtureTable(t)
	p, err := predicates.NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	and := NewOptimizedAnd(NewOptimizedValue(p), NewOptimizedValue(p))
	or := NewOptimizedOr(NewOptimizedValue(p), NewOptimizedValue(p))

	if and.Cost() != 50 {
		t.Errorf("expected AND cost bias of 50, got %d", and.Cost())
	}
	if or.Cost() != 60 {
		t.Errorf("expected OR cost bias of 60, got %d", or.Cost())
	}
}
