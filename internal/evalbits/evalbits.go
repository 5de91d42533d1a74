// Package evalbits implements the per-search evaluation result cache: a
// dense, three-bit-plane bitset over node indices (evaluated/success/
// failed), sized to the node count rounded up to a 64-bit word. Owned
// exclusively by a single search; never shared across searches.
package evalbits

import "github.com/JrodM/a-tree-go/internal/predicates"

const bitsPerWord = 64

// Result is the per-search evaluation cache.
type Result struct {
	evaluated []uint64
	success   []uint64
	failed    []uint64
}

// New allocates a Result sized for nodeCount node indices.
func New(nodeCount int) *Result {
	words := nodeCount/bitsPerWord + 1
	return &Result{
		evaluated: make([]uint64, words),
		success:   make([]uint64, words),
		failed:    make([]uint64, words),
	}
}

// IsEvaluated reports whether id has already been recorded in this search.
func (r *Result) IsEvaluated(id int) bool {
	return getBit(r.evaluated, id) != 0
}

// SetResult records outcome for id. Always marks id as evaluated; the
// success/failed plane bit is set only for the concrete outcomes, leaving
// both clear for predicates.Undefined.
func (r *Result) SetResult(id int, outcome predicates.Tri) {
	switch outcome {
	case predicates.True:
		setBit(r.success, id)
	case predicates.False:
		setBit(r.failed, id)
	}
	setBit(r.evaluated, id)
}

// GetResult returns the outcome previously recorded for id. Calling this
// before SetResult has been called for id is a caller error (mirrors the
// original's debug assertion) and returns Undefined.
func (r *Result) GetResult(id int) predicates.Tri {
	failed := getBit(r.failed, id) != 0
	success := getBit(r.success, id) != 0
	if !failed && !success {
		return predicates.Undefined
	}
	if success && !failed {
		return predicates.True
	}
	return predicates.False
}

func setBit(plane []uint64, id int) {
	plane[id/bitsPerWord] |= 1 << uint(id%bitsPerWord)
}

func getBit(plane []uint64, id int) uint64 {
	return plane[id/bitsPerWord] & (1 << uint(id%bitsPerWord))
}
