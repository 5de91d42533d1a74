package predicates

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID is the 64-bit hash of the canonical predicate value, used as the
// leaf case of the expression id recursion (see internal/ast). Two
// structurally identical predicates (same attribute, kind, operator, and
// canonicalized payload) always hash equal.
func (p Predicate) ID() uint64 {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Attribute))
	buf = append(buf, byte(p.Kind))

	switch p.Kind {
	case NullKind:
		buf = append(buf, byte(p.NullOp))
	case ComparisonKind:
		buf = append(buf, byte(p.ComparisonOp))
		buf = appendComparisonValue(buf, p.ComparisonValue)
	case EqualityKind:
		buf = append(buf, byte(p.EqualityOp))
		buf = appendEqualityValue(buf, p.EqualityValue)
	case SetKind:
		buf = append(buf, byte(p.SetOp))
		buf = appendListLiteral(buf, p.List)
	case ListKind:
		buf = append(buf, byte(p.ListOp))
		buf = appendListLiteral(buf, p.List)
	}

	return xxhash.Sum64(buf)
}

func appendComparisonValue(buf []byte, v ComparisonValue) []byte {
	buf = append(buf, byte(v.Tag))
	switch v.Tag {
	case IntegerValueTag:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.Int))
	case FloatValueTag:
		buf = append(buf, []byte(v.Float.String())...)
	}
	return buf
}

func appendEqualityValue(buf []byte, v EqualityValue) []byte {
	buf = append(buf, byte(v.Tag))
	switch v.Tag {
	case IntegerValueTag:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v.Int))
	case FloatValueTag:
		buf = append(buf, []byte(v.Float.String())...)
	case StringValueTag:
		buf = binary.LittleEndian.AppendUint32(buf, v.Str)
	}
	return buf
}

func appendListLiteral(buf []byte, l ListLiteral) []byte {
	if l.IsString {
		buf = append(buf, 1)
		for _, v := range l.Strs {
			buf = binary.LittleEndian.AppendUint32(buf, v)
		}
		return buf
	}
	buf = append(buf, 0)
	for _, v := range l.Ints {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return buf
}
