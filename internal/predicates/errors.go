package predicates

import "fmt"

// TypeError reports a predicate referencing an unknown attribute, an
// operator incompatible with the attribute's declared kind, or a literal
// whose type does not match the attribute it is tested against.
type TypeError struct {
	Kind    string
	Message string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error (%v): %v", e.Kind, e.Message)
}

func UnknownAttribute(name string) error {
	return TypeError{
		Kind:    "UnknownAttribute",
		Message: fmt.Sprintf("predicate refers to non-existing attribute %q", name),
	}
}

func IncompatibleKind(name string, attributeKind fmt.Stringer, predicateKind string) error {
	return TypeError{
		Kind:    "IncompatibleKind",
		Message: fmt.Sprintf("%q: attribute kind %v is not compatible with predicate kind %v", name, attributeKind, predicateKind),
	}
}
