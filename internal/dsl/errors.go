package dsl

import "fmt"

// ParseError is a lexical or grammatical failure in expression text, or a
// parse-time semantic rejection (unknown attribute, mixed list literal,
// incompatible operator/kind). Unknown attribute and incompatible
// operator/kind are reported by predicates as a TypeError and are wrapped
// here rather than duplicated; an empty list literal fails the grammar and
// surfaces as a syntax ParseError.
type ParseError struct {
	Kind    string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error (%v): %v", e.Kind, e.Message)
}
