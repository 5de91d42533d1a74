// Package reducer aggregates the per-event Report values produced by
// batch.SearchMany into a single combined Report, the match-set analog of
// the teacher's probability reducers.
package reducer

import "github.com/JrodM/a-tree-go/internal/report"

// Reducer combines several search reports into one.
type Reducer[T comparable] interface {
	Reduce(reports []report.Report[T]) report.Report[T]
}

// UnionReducer returns every subscription id that matched at least one of
// the input reports, each appearing once.
type UnionReducer[T comparable] struct{}

func (UnionReducer[T]) Reduce(reports []report.Report[T]) report.Report[T] {
	seen := make(map[T]struct{})
	var union []T
	for _, r := range reports {
		for _, id := range r.Matches() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return report.New(union)
}

// IntersectionReducer returns only the subscription ids that matched
// every input report. An empty input reduces to an empty report.
type IntersectionReducer[T comparable] struct{}

func (IntersectionReducer[T]) Reduce(reports []report.Report[T]) report.Report[T] {
	if len(reports) == 0 {
		return report.New[T](nil)
	}
	counts := make(map[T]int)
	for _, r := range reports {
		seenInThisReport := make(map[T]struct{})
		for _, id := range r.Matches() {
			if _, ok := seenInThisReport[id]; ok {
				continue
			}
			seenInThisReport[id] = struct{}{}
			counts[id]++
		}
	}
	var out []T
	for id, count := range counts {
		if count == len(reports) {
			out = append(out, id)
		}
	}
	return report.New(out)
}

// CountAboveThresholdReducer returns the subscription ids that matched in
// at least Threshold of the input reports (0 < Threshold <= 1, as a
// fraction of len(reports)).
type CountAboveThresholdReducer[T comparable] struct {
	Threshold float64
}

func (c CountAboveThresholdReducer[T]) Reduce(reports []report.Report[T]) report.Report[T] {
	if len(reports) == 0 {
		return report.New[T](nil)
	}
	counts := make(map[T]int)
	for _, r := range reports {
		seenInThisReport := make(map[T]struct{})
		for _, id := range r.Matches() {
			if _, ok := seenInThisReport[id]; ok {
				continue
			}
			seenInThisReport[id] = struct{}{}
			counts[id]++
		}
	}
	var out []T
	for id, count := range counts {
		if float64(count)/float64(len(reports)) >= c.Threshold {
			out = append(out, id)
		}
	}
	return report.New(out)
}
