package events

import "github.com/shopspring/decimal"

// ValueKind discriminates the AttributeValue tagged union.
type ValueKind int

const (
	UndefinedValue ValueKind = iota
	BooleanValue
	IntegerValue
	FloatValue
	StringValue
	IntegerListValue
	StringListValue
)

// AttributeValue is one event slot. Exactly one of the typed fields is
// meaningful, selected by Kind; Undefined carries no payload at all and is
// distinct from every typed zero value (an unset boolean is not "false").
type AttributeValue struct {
	Kind ValueKind

	Bool    bool
	Int     int64
	Float   decimal.Decimal
	Str     uint32   // interned string id
	IntList []int64  // sorted ascending, de-duplicated
	StrList []uint32 // sorted ascending, de-duplicated, interned ids
}

// Undefined is the slot value for an attribute that was never assigned.
var Undefined = AttributeValue{Kind: UndefinedValue}
