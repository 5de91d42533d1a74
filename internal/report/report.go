// Package report holds the result of a single A-Tree search.
package report

import "fmt"

// Report is the outcome of one search: every subscription id whose
// expression matched. T is the engine's subscription id type.
type Report[T comparable] struct {
	matches []T
}

// New wraps a slice of matched subscription ids into a Report.
func New[T comparable](matches []T) Report[T] {
	return Report[T]{matches: matches}
}

// Matches returns the matched subscription ids. The slice is not copied;
// callers must not mutate it.
func (r Report[T]) Matches() []T {
	return r.matches
}

// Len reports how many subscription ids matched.
func (r Report[T]) Len() int {
	return len(r.matches)
}

func (r Report[T]) String() string {
	return fmt.Sprintf("Report{matches=%v}", r.matches)
}
