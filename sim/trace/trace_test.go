package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		Clock:      4,
		ProcessID:  2,
		Duration:   3,
		ReadyCount: 3,
		Reason:     ReasonArrivalOrder,
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].ProcessID != 2 {
		t.Errorf("expected process 2, got %d", st.Dispatches[0].ProcessID)
	}
	if st.Dispatches[0].Reason != ReasonArrivalOrder {
		t.Errorf("expected reason %q, got %q", ReasonArrivalOrder, st.Dispatches[0].Reason)
	}
}

func TestSimulationTrace_RecordIdle_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an idle record is recorded
	st.RecordIdle(IdleRecord{From: 5, To: 9})

	// THEN the trace contains the idle gap
	if len(st.Idles) != 1 {
		t.Fatalf("expected 1 idle record, got %d", len(st.Idles))
	}
	if st.Idles[0].Duration() != 4 {
		t.Errorf("expected idle duration 4, got %d", st.Idles[0].Duration())
	}
}

func TestSimulationTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a trace with level none
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN records are offered
	st.RecordDispatch(DispatchRecord{ProcessID: 1, Duration: 1})
	st.RecordIdle(IdleRecord{From: 0, To: 1})

	// THEN nothing is kept
	if len(st.Dispatches) != 0 || len(st.Idles) != 0 {
		t.Errorf("expected no records, got %d dispatches and %d idles", len(st.Dispatches), len(st.Idles))
	}
}

func TestSimulationTrace_Nil_IsSafe(t *testing.T) {
	// GIVEN a nil trace
	var st *SimulationTrace

	// WHEN records are offered and the trace is reset
	st.RecordDispatch(DispatchRecord{ProcessID: 1})
	st.RecordIdle(IdleRecord{From: 0, To: 2})
	st.Reset()

	// THEN nothing panics and the trace reports disabled
	if st.Enabled() {
		t.Error("nil trace must not be enabled")
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordDispatch(DispatchRecord{Clock: 0, ProcessID: 1, Duration: 2})
	st.RecordDispatch(DispatchRecord{Clock: 2, ProcessID: 2, Duration: 2})
	st.RecordIdle(IdleRecord{From: 4, To: 6})

	// THEN order is preserved
	if len(st.Dispatches) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].ProcessID != 1 || st.Dispatches[1].ProcessID != 2 {
		t.Error("dispatch order not preserved")
	}

	// WHEN the trace is reset
	st.Reset()

	// THEN records are dropped but config is kept
	if len(st.Dispatches) != 0 || len(st.Idles) != 0 {
		t.Error("reset must drop records")
	}
	if !st.Enabled() {
		t.Error("reset must keep the trace level")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
