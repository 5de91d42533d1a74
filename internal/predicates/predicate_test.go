package predicates

import (
	"reflect"
	"testing"

	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/events"
	"github.com/JrodM/a-tree-go/internal/strtable"
)

func fixtureTable(t *testing.T) *attributes.Table {
	t.Helper()
	table, err := attributes.New([]attributes.Definition{
		attributes.Bool("private"),
		attributes.Int("exchange_id"),
		attributes.Dec("bidfloor"),
		attributes.Str("country"),
		attributes.IntList("segment_ids"),
		attributes.StrList("deal_ids"),
	})
	if err != nil {
		t.Fatalf("attributes.New failed: %v", err)
	}
	return table
}

func TestVariablePredicateRejectsNonBooleanAttribute(t *testing.T) {
	table := fixtureTable(t)
	_, err := NewVariable(table, "exchange_id")
	if err == nil {
		t.Fatal("expected an error for a non-boolean attribute")
	}
}

func TestNegationIsAnInvolution(t *testing.T) {
	table := fixtureTable(t)
	predicate, err := NewVariable(table, "private")
	if err != nil {
		t.Fatalf("NewVariable failed: %v", err)
	}

	twice := predicate.Negate().Negate()
	if !reflect.DeepEqual(twice, predicate) {
		t.Errorf("expected ¬¬p == p, got %+v vs %+v", twice, predicate)
	}
	if twice.ID() != predicate.ID() {
		t.Errorf("expected equal hashes after double negation")
	}
}

func TestNegationTableCoversEveryKind(t *testing.T) {
	table := fixtureTable(t)

	cases := []struct {
		name string
		make func() (Predicate, error)
	}{
		{"variable", func() (Predicate, error) { return NewVariable(table, "private") }},
		{"null", func() (Predicate, error) { return NewNull(table, "exchange_id", IsNull) }},
		{"empty", func() (Predicate, error) { return NewNull(table, "deal_ids", IsEmpty) }},
		{"comparison", func() (Predicate, error) {
			return NewComparison(table, "exchange_id", LessThan, IntComparisonValue(5))
		}},
		{"equality", func() (Predicate, error) {
			return NewEquality(table, "exchange_id", Equal, IntEqualityValue(5))
		}},
		{"set", func() (Predicate, error) {
			return NewSet(table, "exchange_id", In, IntListLiteral([]int64{1, 2}))
		}},
		{"list", func() (Predicate, error) {
			return NewList(table, "deal_ids", OneOf, StringListLiteral([]uint32{1, 2}))
		}},
	}

	for _, c := range cases {
		predicate, err := c.make()
		if err != nil {
			t.Fatalf("%s: construction failed: %v", c.name, err)
		}
		if !reflect.DeepEqual(predicate.Negate().Negate(), predicate) {
			t.Errorf("%s: expected involution to hold", c.name)
		}
	}
}

func TestEvaluateReturnsUndefinedForUndefinedAttribute(t *testing.T) {
	table := fixtureTable(t)
	strings := strtable.New()
	predicate, err := NewComparison(table, "exchange_id", GreaterThan, IntComparisonValue(0))
	if err != nil {
		t.Fatalf("NewComparison failed: %v", err)
	}

	builder := events.NewBuilder(table, strings)
	event, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result := predicate.Evaluate(event); result != Undefined {
		t.Errorf("expected Undefined, got %v", result)
	}
}

func TestNullCheckIsConcreteEvenWhenUndefined(t *testing.T) {
	table := fixtureTable(t)
	strings := strtable.New()
	predicate, err := NewNull(table, "exchange_id", IsNull)
	if err != nil {
		t.Fatalf("NewNull failed: %v", err)
	}

	builder := events.NewBuilder(table, strings)
	event, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result := predicate.Evaluate(event); result != True {
		t.Errorf("expected IsNull on an Undefined slot to be True, got %v", result)
	}
}

func TestListOneOfMatchesSharedElement(t *testing.T) {
	table := fixtureTable(t)
	strings := strtable.New()
	d1 := strings.GetOrIntern("d1")
	strings.GetOrIntern("d2")

	predicate, err := NewList(table, "deal_ids", OneOf, StringListLiteral([]uint32{d1}))
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	builder := events.NewBuilder(table, strings)
	if err := builder.WithStringList("deal_ids", []string{"d1", "d2"}); err != nil {
		t.Fatalf("WithStringList failed: %v", err)
	}
	event, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result := predicate.Evaluate(event); result != True {
		t.Errorf("expected OneOf to match, got %v", result)
	}
}

func TestListAllOfFailsWhenEventHasAnElementOutsideTheLiteral(t *testing.T) {
	table := fixtureTable(t)
	strings := strtable.New()
	d1 := strings.GetOrIntern("d1")
	d3 := strings.GetOrIntern("d3")

	predicate, err := NewList(table, "deal_ids", AllOf, StringListLiteral([]uint32{d1, d3}))
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	builder := events.NewBuilder(table, strings)
	if err := builder.WithStringList("deal_ids", []string{"d1", "d2"}); err != nil {
		t.Fatalf("WithStringList failed: %v", err)
	}
	event, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result := predicate.Evaluate(event); result != False {
		t.Errorf("expected AllOf to fail when d2 is not in the literal, got %v", result)
	}
}

// TestListAllOfMatchesAProperSubsetOfTheLiteral exercises the asymmetric
// case an event's list can be smaller than the literal's: AllOf requires
// event ⊆ literal, not literal ⊆ event, so a shorter event list can still
// match a longer literal.
func TestListAllOfMatchesAProperSubsetOfTheLiteral(t *testing.T) {
	table := fixtureTable(t)
	strings := strtable.New()
	d1 := strings.GetOrIntern("d1")
	d2 := strings.GetOrIntern("d2")

	predicate, err := NewList(table, "deal_ids", AllOf, StringListLiteral([]uint32{d1, d2}))
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	builder := events.NewBuilder(table, strings)
	if err := builder.WithStringList("deal_ids", []string{"d1"}); err != nil {
		t.Fatalf("WithStringList failed: %v", err)
	}
	event, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result := predicate.Evaluate(event); result != True {
		t.Errorf("expected AllOf to match when the event is a proper subset of the literal, got %v", result)
	}
}

func TestCostsMatchSpecifiedConstants(t *testing.T) {
	table := fixtureTable(t)

	variable, _ := NewVariable(table, "private")
	if variable.Cost() != 0 {
		t.Errorf("expected Variable cost 0, got %d", variable.Cost())
	}

	set, _ := NewSet(table, "exchange_id", In, IntListLiteral([]int64{1, 2, 3}))
	if set.Cost() != 3 {
		t.Errorf("expected Set cost == list length, got %d", set.Cost())
	}

	list, _ := NewList(table, "segment_ids", OneOf, IntListLiteral([]int64{1, 2, 3}))
	if list.Cost() != 6 {
		t.Errorf("expected List cost == 2x list length, got %d", list.Cost())
	}
}

func TestStructurallyIdenticalPredicatesHashEqual(t *testing.T) {
	table := fixtureTable(t)

	a, _ := NewComparison(table, "exchange_id", LessThan, IntComparisonValue(5))
	b, _ := NewComparison(table, "exchange_id", LessThan, IntComparisonValue(5))

	if a.ID() != b.ID() {
		t.Error("expected identical predicates to hash equal")
	}

	c, _ := NewComparison(table, "exchange_id", LessThan, IntComparisonValue(6))
	if a.ID() == c.ID() {
		t.Error("expected different literals to (very likely) hash differently")
	}
}
