package dag

import (
	"testing"

	"github.com/JrodM/a-tree-go/internal/ast"
	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/events"
	"github.com/JrodM/a-tree-go/internal/predicates"
)

func fixtureTree(t *testing.T) (*ATree[string], *attributes.Table) {
	t.Helper()
	attrs, err := attributes.New([]attributes.Definition{
		attributes.Bool("private"),
		attributes.Int("age"),
		attributes.Str("country"),
	})
	if err != nil {
		t.Fatalf("attributes.New failed: %v", err)
	}
	return New[string](attrs), attrs
}

func buildEvent(t *testing.T, b *events.Builder, mutations ...func(*events.Builder) error) *events.Event {
	t.Helper()
	for _, m := range mutations {
		if err := m(b); err != nil {
			t.Fatalf("building event failed: %v", err)
		}
	}
	event, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return event
}

func boolAttr(name string, value bool) func(*events.Builder) error {
	return func(b *events.Builder) error { return b.WithBoolean(name, value) }
}

func intAttr(name string, value int64) func(*events.Builder) error {
	return func(b *events.Builder) error { return b.WithInteger(name, value) }
}

func variable(t *testing.T, attrs *attributes.Table, name string) *ast.OptimizedNode {
	t.Helper()
	p, err := predicates.NewVariable(attrs, name)
	if err != nil {
		t.Fatalf("NewVariable(%s) failed: %v", name, err)
	}
	return ast.NewOptimizedValue(p)
}

func comparison(t *testing.T, attrs *attributes.Table, name string, op predicates.ComparisonOp, n int64) *ast.OptimizedNode {
	t.Helper()
	p, err := predicates.NewComparison(attrs, name, op, predicates.IntComparisonValue(n))
	if err != nil {
		t.Fatalf("NewComparison(%s) failed: %v", name, err)
	}
	return ast.NewOptimizedValue(p)
}

func TestSearchMatchesASingleLeafExpression(t *testing.T) {
	tree, attrs := fixtureTree(t)
	tree.Insert("sub-1", variable(t, attrs, "private"))

	event := buildEvent(t, tree.MakeEvent(), boolAttr("private", true))

	got := tree.Search(event)
	if !containsStr(got, "sub-1") {
		t.Errorf("expected sub-1 to match, got %v", got)
	}
}

func TestSearchSharesAStructurallyIdenticalSubExpression(t *testing.T) {
	tree, attrs := fixtureTree(t)
	tree.Insert("sub-1", ast.NewOptimizedAnd(variable(t, attrs, "private"), comparison(t, attrs, "age", predicates.GreaterThan, 18)))
	tree.Insert("sub-2", ast.NewOptimizedAnd(variable(t, attrs, "private"), comparison(t, attrs, "age", predicates.GreaterThan, 18)))

	nodesAfterBoth := tree.NodeCount()
	tree.Insert("sub-3", variable(t, attrs, "private"))
	if tree.NodeCount() != nodesAfterBoth {
		t.Errorf("expected the shared leaf to be reused, node count grew from %d to %d", nodesAfterBoth, tree.NodeCount())
	}

	event := buildEvent(t, tree.MakeEvent(), boolAttr("private", true), intAttr("age", 21))
	got := tree.Search(event)
	for _, want := range []string{"sub-1", "sub-2", "sub-3"} {
		if !containsStr(got, want) {
			t.Errorf("expected %s to match, got %v", want, got)
		}
	}
}

func TestDeletePreservesSharingForSurvivingSubscribers(t *testing.T) {
	tree, attrs := fixtureTree(t)
	tree.Insert("sub-1", variable(t, attrs, "private"))
	tree.Insert("sub-2", variable(t, attrs, "private"))

	tree.Delete("sub-1")

	event := buildEvent(t, tree.MakeEvent(), boolAttr("private", true))
	got := tree.Search(event)
	if containsStr(got, "sub-1") {
		t.Errorf("expected sub-1 to no longer match after delete, got %v", got)
	}
	if !containsStr(got, "sub-2") {
		t.Errorf("expected sub-2 to still match, got %v", got)
	}
}

func TestDeleteIsIdempotentForUnknownSubscription(t *testing.T) {
	tree, _ := fixtureTree(t)
	tree.Delete("never-subscribed")
}

func TestSearchHandlesAMixedAndOrExpression(t *testing.T) {
	tree, attrs := fixtureTree(t)
	priv := variable(t, attrs, "private")
	adult := comparison(t, attrs, "age", predicates.GreaterThanEqual, 18)
	expr := ast.NewOptimizedOr(ast.NewOptimizedAnd(priv, adult), comparison(t, attrs, "age", predicates.LessThan, 0))
	tree.Insert("sub-1", expr)

	event := buildEvent(t, tree.MakeEvent(), boolAttr("private", true), intAttr("age", 30))
	got := tree.Search(event)
	if !containsStr(got, "sub-1") {
		t.Errorf("expected sub-1 to match (AND branch true), got %v", got)
	}
}

func TestSearchTreatsUndefinedAsNonMatch(t *testing.T) {
	tree, attrs := fixtureTree(t)
	tree.Insert("sub-1", comparison(t, attrs, "age", predicates.GreaterThan, 18))

	event := buildEvent(t, tree.MakeEvent()) // age left Undefined
	got := tree.Search(event)
	if containsStr(got, "sub-1") {
		t.Errorf("expected an Undefined attribute to never match, got %v", got)
	}
}

func TestOptimizedNegationMatchesAsANegatedVariableLeaf(t *testing.T) {
	attrs, err := attributes.New([]attributes.Definition{attributes.Bool("private")})
	if err != nil {
		t.Fatalf("attributes.New failed: %v", err)
	}
	p, err := predicates.NewVariable(attrs, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}
	raw := ast.NewNot(ast.NewValue(p))
	optimized := raw.Optimize()

	tree := New[string](attrs)
	tree.Insert("sub-1", optimized)

	event := buildEvent(t, tree.MakeEvent(), boolAttr("private", false))
	got := tree.Search(event)
	if !containsStr(got, "sub-1") {
		t.Errorf("expected negated-variable match on private=false, got %v", got)
	}
}

func TestANDWithAFalseAccessChildDoesNotMatch(t *testing.T) {
	tree, attrs := fixtureTree(t)
	cheap := comparison(t, attrs, "age", predicates.LessThan, 0) // cost 0, always false here
	literal := predicates.StringListLiteral([]uint32{
		tree.Strings.GetOrIntern("a"),
		tree.Strings.GetOrIntern("b"),
		tree.Strings.GetOrIntern("c"),
	})
	expensiveSet, err := predicates.NewSet(attrs, "country", predicates.In, literal)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	expr := ast.NewOptimizedAnd(cheap, ast.NewOptimizedValue(expensiveSet))
	tree.Insert("sub-1", expr)

	event := buildEvent(t, tree.MakeEvent(), intAttr("age", 30))
	got := tree.Search(event)
	if containsStr(got, "sub-1") {
		t.Errorf("expected no match, got %v", got)
	}
}

func containsStr(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}
