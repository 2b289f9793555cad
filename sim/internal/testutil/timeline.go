// Package testutil provides shared test infrastructure for the schedsim engine.
// It consolidates timeline invariant checks and assertion helpers used across
// sim/ and its sub-package tests. It does not import sim, so sim's own tests
// can use it.
package testutil

import (
	"math"
	"testing"
)

// Span is one execution interval as seen by the invariant checks.
type Span struct {
	ID    int
	Start int64
	End   int64
}

// Task is the expected arrival and burst of one process.
type Task struct {
	Arrival int64
	Burst   int64
}

// AssertValidTimeline checks the invariants every schedule must satisfy:
// positive-length spans, non-decreasing starts, no overlap, no span before
// its task's arrival, and per-task total duration equal to its burst.
func AssertValidTimeline(t *testing.T, spans []Span, tasks map[int]Task) {
	t.Helper()
	totals := make(map[int]int64, len(tasks))
	for i, s := range spans {
		if s.Start >= s.End {
			t.Errorf("span[%d] %+v: start must be before end", i, s)
		}
		task, ok := tasks[s.ID]
		if !ok {
			t.Errorf("span[%d] %+v: unknown process id", i, s)
			continue
		}
		if s.Start < task.Arrival {
			t.Errorf("span[%d] %+v: starts before arrival %d", i, s, task.Arrival)
		}
		if i > 0 {
			prev := spans[i-1]
			if s.Start < prev.Start {
				t.Errorf("span[%d] %+v: start precedes previous start %d", i, s, prev.Start)
			}
			if s.Start < prev.End {
				t.Errorf("span[%d] %+v: overlaps previous span %+v", i, s, prev)
			}
		}
		totals[s.ID] += s.End - s.Start
	}
	for id, task := range tasks {
		if totals[id] != task.Burst {
			t.Errorf("process %d: scheduled %d time units, want burst %d", id, totals[id], task.Burst)
		}
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
