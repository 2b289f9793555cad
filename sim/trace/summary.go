package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches     int
	ContextSwitches     int // consecutive dispatches to different processes
	Preemptions         int // dispatches that left the process unfinished
	IdleGaps            int
	IdleTime            int64
	MaxReadyCount       int
	UniqueProcesses     int
	DispatchesByProcess map[int]int // process ID → number of dispatches
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesByProcess: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for i, d := range st.Dispatches {
		summary.DispatchesByProcess[d.ProcessID]++
		if i > 0 && st.Dispatches[i-1].ProcessID != d.ProcessID {
			summary.ContextSwitches++
		}
		if d.Remaining > 0 {
			// a unit-step policy re-dispatching the same process is not a preemption
			if i+1 < len(st.Dispatches) && st.Dispatches[i+1].ProcessID != d.ProcessID {
				summary.Preemptions++
			}
		}
		if d.ReadyCount > summary.MaxReadyCount {
			summary.MaxReadyCount = d.ReadyCount
		}
	}

	summary.IdleGaps = len(st.Idles)
	for _, idle := range st.Idles {
		summary.IdleTime += idle.Duration()
	}

	summary.UniqueProcesses = len(summary.DispatchesByProcess)

	return summary
}
