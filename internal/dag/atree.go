package dag

import (
	"github.com/JrodM/a-tree-go/internal/ast"
	"github.com/JrodM/a-tree-go/internal/attributes"
	"github.com/JrodM/a-tree-go/internal/evalbits"
	"github.com/JrodM/a-tree-go/internal/events"
	"github.com/JrodM/a-tree-go/internal/predicates"
	"github.com/JrodM/a-tree-go/internal/strtable"
)

// ATree is the shared-subexpression matching index. T is the caller's
// subscription id type (e.g. a user id), stored verbatim on root nodes
// and returned from Search.
type ATree[T comparable] struct {
	Attributes *attributes.Table
	Strings    *strtable.Table

	arena *arena[T]
	roots map[T]int // subscription id -> node index

	// predicateEntrySet is exactly the set of leaf nodes a search must
	// evaluate directly: OR children, AND access children, and bare leaf
	// roots with no parent edges of their own.
	predicateEntrySet map[int]struct{}

	maxLevel int
}

// New creates an empty A-Tree over the given attribute schema, with its
// own private string interning table for equality/set/list literals. T is
// the caller's subscription id type (e.g. a user id or a uuid).
func New[T comparable](attrs *attributes.Table) *ATree[T] {
	return NewWithStrings[T](attrs, strtable.New())
}

// NewWithStrings creates an A-Tree sharing an existing string table, so
// that events built against it and expressions inserted into it agree on
// interned ids.
func NewWithStrings[T comparable](attrs *attributes.Table, strings *strtable.Table) *ATree[T] {
	return &ATree[T]{
		Attributes:        attrs,
		Strings:           strings,
		arena:             newArena[T](),
		roots:             make(map[T]int),
		predicateEntrySet: make(map[int]struct{}),
	}
}

// NodeCount returns the number of live (non-freed) arena slots.
func (t *ATree[T]) NodeCount() int {
	n := 0
	for _, e := range t.arena.entries {
		if e != nil {
			n++
		}
	}
	return n
}

// Insert adds subID as a subscriber of the given optimized expression,
// structurally sharing any sub-expression already present in the tree.
//
// Precondition: optimized must be NOT-free (the result of Node.Optimize).
func (t *ATree[T]) Insert(subID T, optimized *ast.OptimizedNode) {
	id := optimized.ID()
	idx, exists := t.arena.byExprID[id]
	if exists {
		t.arena.entries[idx].useCount++
	} else {
		idx = t.createNode(optimized, id)
	}

	e := t.arena.entries[idx]
	e.subscriptions = append(e.subscriptions, subID)
	t.roots[subID] = idx
	if e.kind == leafKind {
		t.predicateEntrySet[idx] = struct{}{}
	}
	if e.level > t.maxLevel {
		t.maxLevel = e.level
	}
}

// Delete removes subID's subscription. Unknown subscription ids are a
// silent no-op (idempotent per spec).
func (t *ATree[T]) Delete(subID T) {
	idx, ok := t.roots[subID]
	if !ok {
		return
	}
	delete(t.roots, subID)

	e := t.arena.entries[idx]
	e.subscriptions = removeOne(e.subscriptions, subID)
	t.decrementUseCount(idx)
}

func removeOne[T comparable](xs []T, target T) []T {
	for i, x := range xs {
		if x == target {
			return append(xs[:i], xs[i+1:]...)
		}
	}
	return xs
}

// createNode allocates a fresh node for the given (not yet seen) optimized
// expression, recursively inserting its children. Shared by both top-level
// Insert and recursive child insertion; it never attaches a subscription
// id itself — only the top-level caller does that.
func (t *ATree[T]) createNode(node *ast.OptimizedNode, id uint64) int {
	if node.IsValue() {
		e := &entry[T]{
			id:        id,
			kind:      leafKind,
			level:     1,
			cost:      node.Predicate().Cost(),
			useCount:  1,
			predicate: node.Predicate(),
		}
		idx := t.arena.alloc(e)
		t.arena.byExprID[id] = idx
		return idx
	}

	leftIdx := t.insertChild(node.Left())
	rightIdx := t.insertChild(node.Right())
	leftE, rightE := t.arena.entries[leftIdx], t.arena.entries[rightIdx]

	level := leftE.level
	if rightE.level > level {
		level = rightE.level
	}
	level++

	var children [2]int
	if rightE.cost < leftE.cost {
		children = [2]int{rightIdx, leftIdx}
	} else {
		children = [2]int{leftIdx, rightIdx}
	}

	e := &entry[T]{
		id:       id,
		kind:     branchKind,
		level:    level,
		cost:     node.Cost(),
		useCount: 1,
		operator: node.Operator(),
		children: children,
	}
	idx := t.arena.alloc(e)
	t.arena.byExprID[id] = idx
	t.wireEdges(idx, e)
	if level > t.maxLevel {
		t.maxLevel = level
	}
	return idx
}

// insertChild inserts a non-root occurrence of node, deduplicating
// against an existing node of the same expression id if present.
func (t *ATree[T]) insertChild(node *ast.OptimizedNode) int {
	id := node.ID()
	if idx, ok := t.arena.byExprID[id]; ok {
		t.arena.entries[idx].useCount++
		return idx
	}
	return t.createNode(node, id)
}

// wireEdges links a freshly created branch node to its children's parent
// lists: an OR links both children; an AND links only its access child
// (children[0], already the cheaper-first / tie-left slot).
func (t *ATree[T]) wireEdges(idx int, e *entry[T]) {
	switch e.operator {
	case ast.Or:
		t.addParent(e.children[0], idx)
		t.addParent(e.children[1], idx)
	case ast.And:
		t.addParent(e.children[0], idx)
	}
}

func (t *ATree[T]) addParent(childIdx, parentIdx int) {
	ce := t.arena.entries[childIdx]
	ce.parents = append(ce.parents, parentIdx)
	if ce.kind == leafKind {
		t.predicateEntrySet[childIdx] = struct{}{}
	}
}

// decrementUseCount releases one structural reference to idx. When the
// use-count reaches zero the node is fully removed: unlinked from its
// children's parent lists, its own children released in turn, and its
// arena slot freed for reuse.
func (t *ATree[T]) decrementUseCount(idx int) {
	e := t.arena.entries[idx]
	e.useCount--
	if e.useCount > 0 {
		return
	}

	delete(t.arena.byExprID, e.id)
	if e.kind == leafKind {
		delete(t.predicateEntrySet, idx)
	} else {
		left, right := e.children[0], e.children[1]
		removeParent(t.arena.entries[left], idx)
		removeParent(t.arena.entries[right], idx)
		t.decrementUseCount(left)
		t.decrementUseCount(right)
	}
	t.arena.release(idx)
	if e.level == t.maxLevel {
		t.recomputeMaxLevel()
	}
}

// recomputeMaxLevel rescans every live entry for the new highest level,
// restoring the invariant that maxLevel is the level of some live node
// after the node that previously held that level was freed. Without this,
// maxLevel only ever grows, and Search keeps allocating and walking empty
// level queues for levels nothing occupies anymore.
func (t *ATree[T]) recomputeMaxLevel() {
	max := 0
	for _, e := range t.arena.entries {
		if e != nil && e.level > max {
			max = e.level
		}
	}
	t.maxLevel = max
}

func removeParent[T comparable](e *entry[T], parentIdx int) {
	for i, p := range e.parents {
		if p == parentIdx {
			e.parents = append(e.parents[:i], e.parents[i+1:]...)
			return
		}
	}
}

// MakeEvent starts building an Event against this tree's attribute schema
// and string table.
func (t *ATree[T]) MakeEvent() *events.Builder {
	return events.NewBuilder(t.Attributes, t.Strings)
}

// Search evaluates event against every subscribed expression and returns
// the subscription ids whose expression resolved to true. Order is
// unspecified; a given (node, subscription id) pair is emitted at most
// once per search, but the same id can appear more than once if it
// subscribes more than one expression.
func (t *ATree[T]) Search(event *events.Event) []T {
	bits := evalbits.New(t.arena.len())
	var matches []T

	queueCount := t.maxLevel - 1
	if queueCount < 0 {
		queueCount = 0
	}
	queues := make([][]int, queueCount)

	for idx := range t.predicateEntrySet {
		e := t.arena.entries[idx]
		if e == nil {
			continue
		}
		if len(e.subscriptions) == 0 && len(e.parents) == 0 {
			// Orphaned: nothing to report and nowhere to propagate to.
			// Can only happen transiently between a parent's deletion and
			// this leaf's own use-count reaching zero.
			continue
		}
		outcome := e.predicate.Evaluate(event)
		bits.SetResult(idx, outcome)
		if outcome == predicates.True {
			matches = append(matches, e.subscriptions...)
		}
		for _, p := range e.parents {
			pe := t.arena.entries[p]
			if pe.operator == ast.And && outcome == predicates.False {
				bits.SetResult(p, predicates.False)
				continue
			}
			queues[pe.level-2] = append(queues[pe.level-2], p)
		}
	}

	for level := 2; level <= t.maxLevel; level++ {
		q := queues[level-2]
		for len(q) > 0 {
			idx := q[len(q)-1]
			q = q[:len(q)-1]

			if bits.IsEvaluated(idx) {
				continue
			}
			e := t.arena.entries[idx]
			outcome := t.evaluateNode(e, event, bits)
			bits.SetResult(idx, outcome)
			if outcome == predicates.True {
				matches = append(matches, e.subscriptions...)
			}
			for _, p := range e.parents {
				pe := t.arena.entries[p]
				if pe.operator == ast.And && outcome == predicates.False {
					bits.SetResult(p, predicates.False)
					continue
				}
				queues[pe.level-2] = append(queues[pe.level-2], p)
			}
		}
	}

	return matches
}

// evaluateNode folds a branch node's two children, short-circuiting AND
// on a false child and OR on a true child without forcing the other.
func (t *ATree[T]) evaluateNode(e *entry[T], event *events.Event, bits *evalbits.Result) predicates.Tri {
	left := t.lazyEvaluate(e.children[0], event, bits)
	if e.operator == ast.And && left == predicates.False {
		return predicates.False
	}
	if e.operator == ast.Or && left == predicates.True {
		return predicates.True
	}

	right := t.lazyEvaluate(e.children[1], event, bits)
	if e.operator == ast.And {
		switch {
		case right == predicates.False:
			return predicates.False
		case left == predicates.True && right == predicates.True:
			return predicates.True
		default:
			return predicates.Undefined
		}
	}
	switch {
	case right == predicates.True:
		return predicates.True
	case left == predicates.False && right == predicates.False:
		return predicates.False
	default:
		return predicates.Undefined
	}
}

// lazyEvaluate returns idx's cached result if present, otherwise computes
// and caches it on demand — the propagation-on-demand half of AND
// evaluation, reached when an AND's non-access child was never queued.
func (t *ATree[T]) lazyEvaluate(idx int, event *events.Event, bits *evalbits.Result) predicates.Tri {
	if bits.IsEvaluated(idx) {
		return bits.GetResult(idx)
	}
	e := t.arena.entries[idx]
	var outcome predicates.Tri
	if e.kind == leafKind {
		outcome = e.predicate.Evaluate(event)
	} else {
		outcome = t.evaluateNode(e, event, bits)
	}
	bits.SetResult(idx, outcome)
	return outcome
}
