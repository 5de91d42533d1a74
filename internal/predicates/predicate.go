// Package predicates implements the leaf predicate model: canonical,
// hashable typed tests against one attribute, with per-kind cost,
// evaluation against an event, and structural negation.
package predicates

import (
	"github.com/JrodM/a-tree-go/internal/attributes"
)

// Predicate is a (attribute, kind) leaf test, canonicalized on
// construction: literal lists are sorted and de-duplicated and strings are
// interned to ids, so two structurally identical predicates are deeply
// equal (reflect.DeepEqual) and hash equal. The list payload holds slices,
// so Predicate values cannot be compared with ==.
type Predicate struct {
	Attribute attributes.ID
	Kind      Kind

	NullOp NullOp

	ComparisonOp    ComparisonOp
	ComparisonValue ComparisonValue

	EqualityOp    EqualityOp
	EqualityValue EqualityValue

	SetOp SetOp
	List  ListLiteral // shared payload slot for Set and List kinds

	ListOp ListOp
}

// NewVariable builds a Variable predicate: name must be a Boolean attribute.
func NewVariable(table *attributes.Table, name string) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	if kind != attributes.Boolean {
		return Predicate{}, IncompatibleKind(name, kind, "variable")
	}
	return Predicate{Attribute: id, Kind: VariableKind}, nil
}

// NewNegatedVariable builds a NegatedVariable predicate: name must be a
// Boolean attribute.
func NewNegatedVariable(table *attributes.Table, name string) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	if kind != attributes.Boolean {
		return Predicate{}, IncompatibleKind(name, kind, "negated_variable")
	}
	return Predicate{Attribute: id, Kind: NegatedVariableKind}, nil
}

// NewNull builds a Null predicate. IsNull/IsNotNull apply to any scalar
// attribute kind; IsEmpty/IsNotEmpty apply only to list attribute kinds.
func NewNull(table *attributes.Table, name string, op NullOp) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	switch op {
	case IsNull, IsNotNull:
		if kind == attributes.IntegerList || kind == attributes.StringList {
			return Predicate{}, IncompatibleKind(name, kind, op.String())
		}
	case IsEmpty, IsNotEmpty:
		if kind != attributes.IntegerList && kind != attributes.StringList {
			return Predicate{}, IncompatibleKind(name, kind, op.String())
		}
	}
	return Predicate{Attribute: id, Kind: NullKind, NullOp: op}, nil
}

// NewComparison builds a Comparison predicate: name must be Integer or
// Float, matching value's tag.
func NewComparison(table *attributes.Table, name string, op ComparisonOp, value ComparisonValue) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	if err := checkScalarNumeric(name, kind, value.Tag); err != nil {
		return Predicate{}, err
	}
	return Predicate{Attribute: id, Kind: ComparisonKind, ComparisonOp: op, ComparisonValue: value}, nil
}

// NewEquality builds an Equality predicate: name must be Integer, Float,
// or String, matching value's tag.
func NewEquality(table *attributes.Table, name string, op EqualityOp, value EqualityValue) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	switch value.Tag {
	case IntegerValueTag:
		if kind != attributes.Integer {
			return Predicate{}, IncompatibleKind(name, kind, "equality(integer)")
		}
	case FloatValueTag:
		if kind != attributes.Float {
			return Predicate{}, IncompatibleKind(name, kind, "equality(float)")
		}
	case StringValueTag:
		if kind != attributes.String {
			return Predicate{}, IncompatibleKind(name, kind, "equality(string)")
		}
	}
	return Predicate{Attribute: id, Kind: EqualityKind, EqualityOp: op, EqualityValue: value}, nil
}

// NewSet builds a Set predicate: name must be Integer or String, matching
// the list literal's element kind.
func NewSet(table *attributes.Table, name string, op SetOp, list ListLiteral) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	if list.IsString {
		if kind != attributes.String {
			return Predicate{}, IncompatibleKind(name, kind, "set(string)")
		}
	} else {
		if kind != attributes.Integer {
			return Predicate{}, IncompatibleKind(name, kind, "set(integer)")
		}
	}
	return Predicate{Attribute: id, Kind: SetKind, SetOp: op, List: list}, nil
}

// NewList builds a List predicate: name must be IntegerList or
// StringList, matching the list literal's element kind.
func NewList(table *attributes.Table, name string, op ListOp, list ListLiteral) (Predicate, error) {
	id, kind, err := resolve(table, name)
	if err != nil {
		return Predicate{}, err
	}
	if list.IsString {
		if kind != attributes.StringList {
			return Predicate{}, IncompatibleKind(name, kind, "list(string)")
		}
	} else {
		if kind != attributes.IntegerList {
			return Predicate{}, IncompatibleKind(name, kind, "list(integer)")
		}
	}
	return Predicate{Attribute: id, Kind: ListKind, ListOp: op, List: list}, nil
}

func resolve(table *attributes.Table, name string) (attributes.ID, attributes.Kind, error) {
	id, ok := table.ByName(name)
	if !ok {
		return 0, 0, UnknownAttribute(name)
	}
	return id, table.ByID(id), nil
}

func checkScalarNumeric(name string, kind attributes.Kind, tag ValueTag) error {
	switch tag {
	case IntegerValueTag:
		if kind != attributes.Integer {
			return IncompatibleKind(name, kind, "comparison(integer)")
		}
	case FloatValueTag:
		if kind != attributes.Float {
			return IncompatibleKind(name, kind, "comparison(float)")
		}
	}
	return nil
}

// Cost is used to order children cheaper-first and to pick an AND node's
// access child. Variable/NegatedVariable/Null/Comparison/Equality are
// constant cost; Set is a binary search (1x list length); List is a
// linear merge against the event's sorted list (2x list length).
func (p Predicate) Cost() uint64 {
	switch p.Kind {
	case SetKind:
		return uint64(p.List.Len())
	case ListKind:
		return 2 * uint64(p.List.Len())
	default:
		return 0
	}
}
