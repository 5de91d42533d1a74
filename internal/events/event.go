package events

import (
	"slices"

	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/strtable"
	"github.com/shopspring/decimal"
)

// Event is a dense vector of attribute values indexed by attribute id. It
// is transient: built, searched against once, then dropped.
type Event struct {
	byID []AttributeValue
}

// At returns the value assigned to attribute id, or Undefined if the id is
// out of range for this event (cannot happen for an id obtained from the
// same attribute table the event was built against).
func (e *Event) At(id attributes.ID) AttributeValue {
	if int(id) >= len(e.byID) {
		return Undefined
	}
	return e.byID[id]
}

// Builder assembles an Event against a fixed attribute table, defaulting
// every slot to Undefined until explicitly set.
type Builder struct {
	byID       []AttributeValue
	attributes *attributes.Table
	strings    *strtable.Table
}

// NewBuilder returns a Builder with every attribute slot Undefined.
func NewBuilder(table *attributes.Table, strings *strtable.Table) *Builder {
	byID := make([]AttributeValue, table.Len())
	for i := range byID {
		byID[i] = Undefined
	}
	return &Builder{byID: byID, attributes: table, strings: strings}
}

// Build finalizes the Event. Non-assigned attributes remain Undefined.
func (b *Builder) Build() (*Event, error) {
	return &Event{byID: b.byID}, nil
}

func (b *Builder) WithBoolean(name string, value bool) error {
	return b.set(name, attributes.Boolean, AttributeValue{Kind: BooleanValue, Bool: value})
}

func (b *Builder) WithInteger(name string, value int64) error {
	return b.set(name, attributes.Integer, AttributeValue{Kind: IntegerValue, Int: value})
}

// WithFloat sets a fixed-point decimal attribute from an integer mantissa
// and a base-10 scale, e.g. WithFloat("bidfloor", 150, 2) sets 1.50.
func (b *Builder) WithFloat(name string, mantissa int64, scale int32) error {
	value := decimal.New(mantissa, -scale)
	return b.set(name, attributes.Float, AttributeValue{Kind: FloatValue, Float: value})
}

func (b *Builder) WithString(name string, value string) error {
	id := b.strings.Get(value)
	return b.set(name, attributes.String, AttributeValue{Kind: StringValue, Str: id})
}

func (b *Builder) WithIntegerList(name string, values []int64) error {
	sorted := sortedUniqueInts(values)
	return b.set(name, attributes.IntegerList, AttributeValue{Kind: IntegerListValue, IntList: sorted})
}

func (b *Builder) WithStringList(name string, values []string) error {
	ids := make([]uint32, len(values))
	for i, v := range values {
		ids[i] = b.strings.Get(v)
	}
	sorted := sortedUniqueUint32(ids)
	return b.set(name, attributes.StringList, AttributeValue{Kind: StringListValue, StrList: sorted})
}

func (b *Builder) WithUndefined(name string) error {
	id, ok := b.attributes.ByName(name)
	if !ok {
		return NonExistingAttribute(name)
	}
	b.byID[id] = Undefined
	return nil
}

func (b *Builder) set(name string, expected attributes.Kind, value AttributeValue) error {
	id, ok := b.attributes.ByName(name)
	if !ok {
		return NonExistingAttribute(name)
	}
	actual := b.attributes.ByID(id)
	if actual != expected {
		return WrongType(name, expected, actual)
	}
	b.byID[id] = value
	return nil
}

func sortedUniqueInts(values []int64) []int64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortedUniqueUint32(values []uint32) []uint32 {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
