// Package attributes declares the fixed attribute schema an engine is
// constructed with: names mapped to dense ids and declared kinds.
package attributes

// Kind is the declared type of an attribute.
type Kind int

const (
	Boolean Kind = iota
	Integer
	Float
	String
	IntegerList
	StringList
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case IntegerList:
		return "integer_list"
	case StringList:
		return "string_list"
	default:
		return "unknown"
	}
}

// ID is a dense, stable index into a Table, assigned in declaration order.
type ID uint32

// Definition pairs an attribute name with its declared kind.
type Definition struct {
	Name string
	Kind Kind
}

func Bool(name string) Definition        { return Definition{Name: name, Kind: Boolean} }
func Int(name string) Definition         { return Definition{Name: name, Kind: Integer} }
func Dec(name string) Definition         { return Definition{Name: name, Kind: Float} }
func Str(name string) Definition         { return Definition{Name: name, Kind: String} }
func IntList(name string) Definition     { return Definition{Name: name, Kind: IntegerList} }
func StrList(name string) Definition     { return Definition{Name: name, Kind: StringList} }

// Table is the immutable-after-construction attribute schema.
type Table struct {
	byName map[string]ID
	byID   []Kind
}

// New builds a Table from definitions, rejecting duplicate names.
func New(definitions []Definition) (*Table, error) {
	byName := make(map[string]ID, len(definitions))
	byID := make([]Kind, 0, len(definitions))
	for i, def := range definitions {
		if _, exists := byName[def.Name]; exists {
			return nil, DuplicateAttribute(def.Name)
		}
		byName[def.Name] = ID(i)
		byID = append(byID, def.Kind)
	}
	return &Table{byName: byName, byID: byID}, nil
}

// ByName returns the id for name and whether it exists.
func (t *Table) ByName(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// ByID returns the declared kind for id. Panics if id is out of range,
// which cannot happen for an id obtained from ByName on this table.
func (t *Table) ByID(id ID) Kind {
	return t.byID[id]
}

// Len reports the number of declared attributes.
func (t *Table) Len() int {
	return len(t.byID)
}
