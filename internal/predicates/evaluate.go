package predicates

import (
	"cmp"

	"github.com/JrodM/a-tree-go/internal/events"
)

// Evaluate tests p against event, returning True, False, or Undefined.
// Undefined is produced only when the referenced attribute slot is
// Undefined and the predicate is not a null-check: null-checks (IsNull,
// IsNotNull, IsEmpty, IsNotEmpty) always resolve to a concrete bool, even
// against an Undefined slot.
func (p Predicate) Evaluate(event *events.Event) Tri {
	value := event.At(p.Attribute)

	switch p.Kind {
	case VariableKind:
		if value.Kind == events.UndefinedValue {
			return Undefined
		}
		return triFromBool(value.Bool)
	case NegatedVariableKind:
		if value.Kind == events.UndefinedValue {
			return Undefined
		}
		return triFromBool(!value.Bool)
	case NullKind:
		return p.evaluateNull(value)
	case ComparisonKind:
		return p.evaluateComparison(value)
	case EqualityKind:
		return p.evaluateEquality(value)
	case SetKind:
		return p.evaluateSet(value)
	case ListKind:
		return p.evaluateList(value)
	default:
		return Undefined
	}
}

func (p Predicate) evaluateNull(value events.AttributeValue) Tri {
	isUndefined := value.Kind == events.UndefinedValue
	switch p.NullOp {
	case IsNull:
		return triFromBool(isUndefined)
	case IsNotNull:
		return triFromBool(!isUndefined)
	case IsEmpty:
		if isUndefined {
			return True
		}
		return triFromBool(listLen(value) == 0)
	default: // IsNotEmpty
		if isUndefined {
			return False
		}
		return triFromBool(listLen(value) != 0)
	}
}

func listLen(value events.AttributeValue) int {
	if value.Kind == events.IntegerListValue {
		return len(value.IntList)
	}
	return len(value.StrList)
}

func (p Predicate) evaluateComparison(value events.AttributeValue) Tri {
	if value.Kind == events.UndefinedValue {
		return Undefined
	}
	var cmp int
	switch p.ComparisonValue.Tag {
	case IntegerValueTag:
		cmp = compareInt64(value.Int, p.ComparisonValue.Int)
	default: // FloatValueTag
		cmp = value.Float.Cmp(p.ComparisonValue.Float)
	}
	return triFromBool(satisfiesComparison(p.ComparisonOp, cmp))
}

func satisfiesComparison(op ComparisonOp, cmp int) bool {
	switch op {
	case LessThan:
		return cmp < 0
	case LessThanEqual:
		return cmp <= 0
	case GreaterThan:
		return cmp > 0
	default: // GreaterThanEqual
		return cmp >= 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (p Predicate) evaluateEquality(value events.AttributeValue) Tri {
	if value.Kind == events.UndefinedValue {
		return Undefined
	}
	var equal bool
	switch p.EqualityValue.Tag {
	case IntegerValueTag:
		equal = value.Int == p.EqualityValue.Int
	case FloatValueTag:
		equal = value.Float.Equal(p.EqualityValue.Float)
	default: // StringValueTag
		equal = value.Str == p.EqualityValue.Str
	}
	if p.EqualityOp == NotEqual {
		equal = !equal
	}
	return triFromBool(equal)
}

func (p Predicate) evaluateSet(value events.AttributeValue) Tri {
	if value.Kind == events.UndefinedValue {
		return Undefined
	}
	var found bool
	if p.List.IsString {
		found = binarySearchUint32(p.List.Strs, value.Str)
	} else {
		found = binarySearchInt64(p.List.Ints, value.Int)
	}
	if p.SetOp == NotIn {
		found = !found
	}
	return triFromBool(found)
}

func binarySearchInt64(sorted []int64, target int64) bool {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case sorted[mid] == target:
			return true
		case sorted[mid] < target:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

func binarySearchUint32(sorted []uint32, target uint32) bool {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case sorted[mid] == target:
			return true
		case sorted[mid] < target:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

// evaluateList compares the predicate's literal list against the event's
// sorted, de-duplicated attribute list using a linear two-pointer merge.
// The literal is the "all of these" / "any of these" set; the event's
// list is what is being tested against it.
func (p Predicate) evaluateList(value events.AttributeValue) Tri {
	if value.Kind == events.UndefinedValue {
		return Undefined
	}

	var result bool
	if p.List.IsString {
		result = applyListOp(p.ListOp, p.List.Strs, value.StrList)
	} else {
		result = applyListOp(p.ListOp, p.List.Ints, value.IntList)
	}
	return triFromBool(result)
}

// applyListOp evaluates one of OneOf/NoneOf/AllOf/NotAllOf for the
// predicate's sorted literal against the event's sorted attribute list.
func applyListOp[T cmp.Ordered](op ListOp, literal, event []T) bool {
	switch op {
	case OneOf:
		return oneOf(literal, event)
	case NoneOf:
		return !oneOf(literal, event)
	case AllOf:
		return allOf(event, literal)
	default: // NotAllOf
		return !allOf(event, literal)
	}
}

// oneOf reports whether literal and event share at least one element
// (linear two-pointer merge over two sorted, de-duplicated slices).
func oneOf[T cmp.Ordered](literal, event []T) bool {
	i, j := 0, 0
	for i < len(literal) && j < len(event) {
		switch {
		case literal[i] == event[j]:
			return true
		case literal[i] < event[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// allOf reports whether every element of event is present in literal
// (event ⊆ literal): "attribute all of [x, y]" matches an event list that
// contains only elements drawn from {x, y} (e.g. event=[x] matches).
func allOf[T cmp.Ordered](event, literal []T) bool {
	if len(event) == 0 {
		return true
	}
	if len(event) > len(literal) {
		return false
	}
	i, j := 0, 0
	for i < len(event) {
		if j >= len(literal) {
			return false
		}
		switch {
		case event[i] == literal[j]:
			i++
			j++
		case event[i] < literal[j]:
			return false
		default:
			j++
		}
	}
	return true
}
