package attributes

import "fmt"

// SchemaError reports a problem in the declared attribute schema itself,
// as opposed to a problem referencing it (see predicates.TypeError).
type SchemaError struct {
	Kind    string
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema error (%v): %v", e.Kind, e.Message)
}

// DuplicateAttribute reports that name was declared more than once.
func DuplicateAttribute(name string) error {
	return SchemaError{
		Kind:    "DuplicateAttribute",
		Message: fmt.Sprintf("attribute %q has already been defined", name),
	}
}
