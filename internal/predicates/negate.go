package predicates

// Negate returns the structural negation of p: flipping a single field
// yields the semantic complement without ever introducing a NOT node.
// The involution table is closed and total over every predicate kind;
// NotAllOf exists solely so List's negation stays inside this table.
func (p Predicate) Negate() Predicate {
	negated := p
	switch p.Kind {
	case VariableKind:
		negated.Kind = NegatedVariableKind
	case NegatedVariableKind:
		negated.Kind = VariableKind
	case NullKind:
		negated.NullOp = negateNullOp(p.NullOp)
	case ComparisonKind:
		negated.ComparisonOp = negateComparisonOp(p.ComparisonOp)
	case EqualityKind:
		negated.EqualityOp = negateEqualityOp(p.EqualityOp)
	case SetKind:
		negated.SetOp = negateSetOp(p.SetOp)
	case ListKind:
		negated.ListOp = negateListOp(p.ListOp)
	}
	return negated
}

func negateNullOp(op NullOp) NullOp {
	switch op {
	case IsNull:
		return IsNotNull
	case IsNotNull:
		return IsNull
	case IsEmpty:
		return IsNotEmpty
	default: // IsNotEmpty
		return IsEmpty
	}
}

// negateComparisonOp implements ¬(<) = ≥ and ¬(≤) = >, i.e. strict and
// non-strict operators swap sides as well as strictness.
func negateComparisonOp(op ComparisonOp) ComparisonOp {
	switch op {
	case LessThan:
		return GreaterThanEqual
	case LessThanEqual:
		return GreaterThan
	case GreaterThan:
		return LessThanEqual
	default: // GreaterThanEqual
		return LessThan
	}
}

func negateEqualityOp(op EqualityOp) EqualityOp {
	if op == Equal {
		return NotEqual
	}
	return Equal
}

func negateSetOp(op SetOp) SetOp {
	if op == In {
		return NotIn
	}
	return In
}

func negateListOp(op ListOp) ListOp {
	switch op {
	case OneOf:
		return NoneOf
	case NoneOf:
		return OneOf
	case AllOf:
		return NotAllOf
	default: // NotAllOf
		return AllOf
	}
}
