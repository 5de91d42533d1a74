// Package strtable interns attribute-value strings to dense integer ids so
// predicates and event slots compare by id instead of by string content.
package strtable

// SentinelID is returned by Get for a string that has never been interned.
// It cannot equal any interned id, since interning starts counting at 1.
const SentinelID uint32 = 0

// Table is an append-only string interning table. Ids are stable for the
// lifetime of the table; nothing is ever removed or renumbered.
type Table struct {
	byValue map[string]uint32
	counter uint32
}

// New returns an empty string table.
func New() *Table {
	return &Table{
		byValue: make(map[string]uint32),
		counter: 1,
	}
}

// Get returns the interned id for value, or SentinelID if value has never
// been interned. It never mutates the table; this is the read path used
// while building events, where an unseen string must not spuriously match
// any predicate.
func (t *Table) Get(value string) uint32 {
	if id, ok := t.byValue[value]; ok {
		return id
	}
	return SentinelID
}

// GetOrIntern returns the interned id for value, interning it with a fresh
// id if it has not been seen before. This is the write path used while
// parsing expressions, which may reference strings no event has used yet.
func (t *Table) GetOrIntern(value string) uint32 {
	if id, ok := t.byValue[value]; ok {
		return id
	}
	id := t.counter
	t.counter++
	t.byValue[value] = id
	return id
}

// Len reports how many distinct strings have been interned.
func (t *Table) Len() int {
	return len(t.byValue)
}
