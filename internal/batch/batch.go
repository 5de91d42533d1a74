// Package batch runs a single A-Tree search concurrently against many
// events. A search only reads the DAG, never mutates it, so fanning out
// one goroutine per event is safe as long as no Insert/Delete is in
// flight against the same tree.
package batch

import (
	"context"
	"sync"

	"github.com/JrodM/a-tree-go/internal/events"
	"github.com/JrodM/a-tree-go/internal/report"
)

// Searcher is the subset of *dag.ATree[T] batch needs, narrowed to avoid
// an import cycle (dag is the public facade's lower layer; batch sits
// beside it and is wired in by the root package).
type Searcher[T comparable] interface {
	Search(event *events.Event) []T
}

type indexedReport[T comparable] struct {
	index  int
	report report.Report[T]
}

// SearchMany evaluates events[i] against tree and returns reports[i] in
// the same order, fanning out one goroutine per event. Cancelling ctx
// stops new work from being collected but does not abort goroutines
// already running a search (dag.Search takes no context of its own).
func SearchMany[T comparable](ctx context.Context, tree Searcher[T], events []*events.Event) ([]report.Report[T], error) {
	if len(events) == 0 {
		return nil, nil
	}

	resultCh := make(chan indexedReport[T], len(events))
	var wg sync.WaitGroup
	wg.Add(len(events))

	for i, event := range events {
		go func() {
			defer wg.Done()
			matches := tree.Search(event)
			resultCh <- indexedReport[T]{index: i, report: report.New(matches)}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	reports := make([]report.Report[T], len(events))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ir, ok := <-resultCh:
			if !ok {
				return reports, nil
			}
			reports[ir.index] = ir.report
		}
	}
}
