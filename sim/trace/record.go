// Package trace provides decision-trace recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Dispatch reasons recorded by the scheduling policies.
const (
	ReasonArrivalOrder  = "arrival-order"
	ReasonQuantum       = "quantum"
	ReasonMinPriority   = "min-priority"
	ReasonShortestBurst = "shortest-burst"
	ReasonForcedOrder   = "forced-order"
)

// DispatchRecord captures one decision to give the CPU to a process.
type DispatchRecord struct {
	Clock      int64  // simulation time the slice starts
	ProcessID  int    // process that was dispatched
	Duration   int64  // length of the slice granted
	ReadyCount int    // number of eligible processes at decision time, chosen one included
	Remaining  int64  // burst left for the process after the slice
	Reason     string // which policy rule selected the process
}

// IdleRecord captures a jump of the clock over a period with no eligible work.
type IdleRecord struct {
	From int64
	To   int64
}

// Duration returns To - From.
func (r IdleRecord) Duration() int64 {
	return r.To - r.From
}
