package predicates

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ComparisonValue is the right-hand operand of a Comparison predicate:
// either an integer or a fixed-point decimal, never both.
type ComparisonValue struct {
	Tag   ValueTag
	Int   int64
	Float decimal.Decimal
}

func IntComparisonValue(v int64) ComparisonValue {
	return ComparisonValue{Tag: IntegerValueTag, Int: v}
}

func FloatComparisonValue(v decimal.Decimal) ComparisonValue {
	return ComparisonValue{Tag: FloatValueTag, Float: v}
}

// EqualityValue is the right-hand operand of an Equality predicate: an
// integer, a fixed-point decimal, or an interned string id.
type EqualityValue struct {
	Tag ValueTag
	Int int64
	Float decimal.Decimal
	Str uint32
}

func IntEqualityValue(v int64) EqualityValue {
	return EqualityValue{Tag: IntegerValueTag, Int: v}
}

func FloatEqualityValue(v decimal.Decimal) EqualityValue {
	return EqualityValue{Tag: FloatValueTag, Float: v}
}

func StringEqualityValue(internedID uint32) EqualityValue {
	return EqualityValue{Tag: StringValueTag, Str: internedID}
}

// ListLiteral is the right-hand operand of a Set or List predicate: a
// sorted, de-duplicated list of integers or of interned string ids.
type ListLiteral struct {
	IsString bool
	Ints     []int64
	Strs     []uint32
}

func IntListLiteral(values []int64) ListLiteral {
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	return ListLiteral{Ints: out}
}

func StringListLiteral(internedIDs []uint32) ListLiteral {
	out := slices.Clone(internedIDs)
	slices.Sort(out)
	out = slices.Compact(out)
	return ListLiteral{IsString: true, Strs: out}
}

// Len reports the number of elements, used for predicate cost.
func (l ListLiteral) Len() int {
	if l.IsString {
		return len(l.Strs)
	}
	return len(l.Ints)
}
