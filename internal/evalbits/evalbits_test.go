package evalbits

import (
	"testing"

	"github.com/JrodM/a-tree-go/internal/predicates"
)

func TestUnevaluatedIdReportsFalse(t *testing.T) {
	r := New(128)
	if r.IsEvaluated(1) {
		t.Error("expected an untouched id to report not evaluated")
	}
}

func TestCanRecordEachOutcome(t *testing.T) {
	cases := []predicates.Tri{predicates.True, predicates.False, predicates.Undefined}
	for _, outcome := range cases {
		r := New(128)
		r.SetResult(1, outcome)

		if !r.IsEvaluated(1) {
			t.Errorf("%v: expected id to be evaluated", outcome)
		}
		if got := r.GetResult(1); got != outcome {
			t.Errorf("expected %v, got %v", outcome, got)
		}
	}
}

func TestCanSetAnIdThatExceedsAWord(t *testing.T) {
	r := New(128)
	r.SetResult(67, predicates.False)

	if !r.IsEvaluated(67) {
		t.Error("expected id 67 to be evaluated")
	}
	if got := r.GetResult(67); got != predicates.False {
		t.Errorf("expected False, got %v", got)
	}
}

func TestSmallNodeCountsStillAllocateAWord(t *testing.T) {
	r := New(15)
	r.SetResult(1, predicates.True)
	if got := r.GetResult(1); got != predicates.True {
		t.Errorf("expected True, got %v", got)
	}
}
