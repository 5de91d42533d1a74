package events

import (
	"fmt"

	"github.com/JrodM/a-tree-go/internal/attributes"
)

// EventBuildError reports a problem building an Event: an unknown
// attribute name, or a value of the wrong kind for a declared attribute.
type EventBuildError struct {
	Kind    string
	Message string
}

func (e EventBuildError) Error() string {
	return fmt.Sprintf("event build error (%v): %v", e.Kind, e.Message)
}

func NonExistingAttribute(name string) error {
	return EventBuildError{
		Kind:    "NonExistingAttribute",
		Message: fmt.Sprintf("event refers to non-existing attribute %q", name),
	}
}

func WrongType(name string, expected, actual attributes.Kind) error {
	return EventBuildError{
		Kind:    "WrongType",
		Message: fmt.Sprintf("%q: wrong type => expected: %v, found: %v", name, expected, actual),
	}
}
