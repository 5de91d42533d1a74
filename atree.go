// Package atree is a shared-subexpression matching index for boolean
// expressions written against a fixed attribute schema: a single Insert
// of a textual expression shares any structurally identical
// sub-expression already present, and a single Search resolves every
// subscribed expression against an event in one level-ordered pass.
package atree

import (
	"context"

	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/batch"
	"github.com/JrodM/a-tree-go/internal/dag"
	"github.com/JrodM/a-tree-go/internal/dsl"
	"github.com/JrodM/a-tree-go/internal/events"
	"github.com/JrodM/a-tree-go/internal/reducer"
	"github.com/JrodM/a-tree-go/internal/report"
	"github.com/JrodM/a-tree-go/internal/strtable"
)

// Type aliases re-exported so callers never need to import the internal
// packages directly to use this package's public surface.
type (
	Kind         = attributes.Kind
	Definition   = attributes.Definition
	Event        = events.Event
	EventBuilder = events.Builder

	Report[T comparable] = report.Report[T]

	// Reducer combines the per-event reports SearchMany produces into a
	// single aggregate report, e.g. for SearchManyReduced.
	Reducer[T comparable] = reducer.Reducer[T]
)

// Reducer implementations, re-exported so SearchManyReduced callers never
// need to import internal/reducer directly.
type (
	UnionReducer[T comparable]               = reducer.UnionReducer[T]
	IntersectionReducer[T comparable]        = reducer.IntersectionReducer[T]
	CountAboveThresholdReducer[T comparable] = reducer.CountAboveThresholdReducer[T]
)

var (
	Bool    = attributes.Bool
	Int     = attributes.Int
	Dec     = attributes.Dec
	Str     = attributes.Str
	IntList = attributes.IntList
	StrList = attributes.StrList
)

// ATree is the engine: T is the caller's subscription id type, stored
// verbatim on matching expressions and returned from Search.
type ATree[T comparable] struct {
	tree    *dag.ATree[T]
	schema  *attributes.Table
	strings *strtable.Table
}

// New builds an engine over the given attribute schema. Definitions are
// built with Bool/Int/Dec/Str/IntList/StrList; duplicate names are an
// error.
func New[T comparable](definitions []Definition) (*ATree[T], error) {
	schema, err := attributes.New(definitions)
	if err != nil {
		return nil, err
	}
	strings := strtable.New()
	return &ATree[T]{
		tree:    dag.NewWithStrings[T](schema, strings),
		schema:  schema,
		strings: strings,
	}, nil
}

// NodeCount returns the number of live DAG nodes, shared sub-expressions
// counted once.
func (a *ATree[T]) NodeCount() int {
	return a.tree.NodeCount()
}

// Insert compiles exprText against this engine's schema and adds subID as
// a subscriber of the resulting expression, structurally sharing any
// sub-expression already present in the index.
func (a *ATree[T]) Insert(subID T, exprText string) error {
	optimized, err := dsl.Parse(a.schema, a.strings, exprText)
	if err != nil {
		return err
	}
	a.tree.Insert(subID, optimized)
	return nil
}

// Delete removes subID's subscription. Unknown subscription ids are a
// silent no-op.
func (a *ATree[T]) Delete(subID T) {
	a.tree.Delete(subID)
}

// MakeEvent starts building an Event against this engine's attribute
// schema.
func (a *ATree[T]) MakeEvent() *EventBuilder {
	return a.tree.MakeEvent()
}

// Search evaluates event against every subscribed expression and returns
// the subscription ids whose expression resolved to true.
func (a *ATree[T]) Search(event *Event) Report[T] {
	return report.New(a.tree.Search(event))
}

// SearchMany evaluates events concurrently, one goroutine per event, and
// returns their reports in the same order. Only safe to call when no
// Insert/Delete is concurrently in flight against the same engine.
func (a *ATree[T]) SearchMany(ctx context.Context, events []*Event) ([]Report[T], error) {
	return batch.SearchMany[T](ctx, a.tree, events)
}

// SearchManyReduced runs SearchMany and folds its per-event reports into a
// single aggregate report via reduce (e.g. UnionReducer{} to collect every
// subscription id that matched any event).
func (a *ATree[T]) SearchManyReduced(ctx context.Context, events []*Event, reduce Reducer[T]) (Report[T], error) {
	reports, err := a.SearchMany(ctx, events)
	if err != nil {
		return Report[T]{}, err
	}
	return reduce.Reduce(reports), nil
}

// ToGraphviz renders the current DAG as a DOT digraph, for visualizing
// shared sub-expression structure.
func (a *ATree[T]) ToGraphviz() string {
	return a.tree.ToGraphviz()
}
