package sim

import "github.com/schedsim/schedsim/sim/trace"

// fcfs walks the arrival-sorted list once, idling the clock forward when
// the next process has not arrived yet. Every process gets one interval.
func fcfs(processes []Process, tr *trace.SimulationTrace) (Schedule, error) {
	if err := validateProcesses(processes, false); err != nil {
		return nil, err
	}
	sorted := sortedByArrival(processes)
	schedule := make(Schedule, 0, len(sorted))

	var clock int64
	arrived := 0 // sorted[:arrived] have arrival <= clock
	for i, p := range sorted {
		if clock < p.ArrivalTime {
			tr.RecordIdle(trace.IdleRecord{From: clock, To: p.ArrivalTime})
			clock = p.ArrivalTime
		}
		for arrived < len(sorted) && sorted[arrived].ArrivalTime <= clock {
			arrived++
		}
		end := clock + p.BurstTime
		schedule = append(schedule, Interval{ProcessID: p.ID, Start: clock, End: end})
		tr.RecordDispatch(trace.DispatchRecord{
			Clock:      clock,
			ProcessID:  p.ID,
			Duration:   p.BurstTime,
			ReadyCount: arrived - i,
			Reason:     trace.ReasonArrivalOrder,
		})
		clock = end
	}
	return schedule, nil
}
