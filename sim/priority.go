package sim

import "github.com/schedsim/schedsim/sim/trace"

// selectionKey orders eligible processes; the smallest key runs first.
type selectionKey func(p Process) int64

func priorityKey(p Process) int64 {
	return int64(p.PriorityValue())
}

func burstKey(p Process) int64 {
	return p.BurstTime
}

// nonPreemptive is the shared control flow of the priority and SJF policies.
// At every decision point it picks the eligible process with the smallest
// key (ties: earliest in arrival order) and runs it to completion. With no
// eligible process the clock jumps to the earliest uncompleted arrival.
func nonPreemptive(processes []Process, requirePriority bool, key selectionKey, reason string, tr *trace.SimulationTrace) (Schedule, error) {
	if err := validateProcesses(processes, requirePriority); err != nil {
		return nil, err
	}
	sorted := sortedByArrival(processes)
	n := len(sorted)
	done := make([]bool, n)
	schedule := make(Schedule, 0, n)

	var clock int64
	completed := 0
	pending := 0 // earliest uncompleted sorted position
	for completed < n {
		chosen, ready := -1, 0
		for i := pending; i < n && sorted[i].ArrivalTime <= clock; i++ {
			if done[i] {
				continue
			}
			ready++
			if chosen < 0 || key(sorted[i]) < key(sorted[chosen]) {
				chosen = i
			}
		}
		if chosen < 0 {
			tr.RecordIdle(trace.IdleRecord{From: clock, To: sorted[pending].ArrivalTime})
			clock = sorted[pending].ArrivalTime
			continue
		}

		p := sorted[chosen]
		end := clock + p.BurstTime
		schedule = append(schedule, Interval{ProcessID: p.ID, Start: clock, End: end})
		tr.RecordDispatch(trace.DispatchRecord{
			Clock:      clock,
			ProcessID:  p.ID,
			Duration:   p.BurstTime,
			ReadyCount: ready,
			Reason:     reason,
		})
		clock = end
		done[chosen] = true
		completed++
		for pending < n && done[pending] {
			pending++
		}
	}
	return schedule, nil
}

// preemptivePriority advances the clock one unit at a time, always running
// the arrived process with the lowest priority value. The arrived set is
// append-only in arrival order, so ties go to the earliest arrival.
func preemptivePriority(processes []Process, tr *trace.SimulationTrace) (Schedule, error) {
	if err := validateProcesses(processes, true); err != nil {
		return nil, err
	}
	sorted := sortedByArrival(processes)
	n := len(sorted)
	remaining := make([]int64, n)
	for i, p := range sorted {
		remaining[i] = p.BurstTime
	}
	arrived := make([]int, 0, n)
	var schedule Schedule

	var clock int64
	next, completed := 0, 0
	for completed < n {
		for next < n && sorted[next].ArrivalTime <= clock {
			arrived = append(arrived, next)
			next++
		}
		if len(arrived) == 0 {
			tr.RecordIdle(trace.IdleRecord{From: clock, To: sorted[next].ArrivalTime})
			clock = sorted[next].ArrivalTime
			continue
		}

		pos := 0
		for k := 1; k < len(arrived); k++ {
			if sorted[arrived[k]].PriorityValue() < sorted[arrived[pos]].PriorityValue() {
				pos = k
			}
		}
		idx := arrived[pos]
		schedule = append(schedule, Interval{ProcessID: sorted[idx].ID, Start: clock, End: clock + 1})
		remaining[idx]--
		tr.RecordDispatch(trace.DispatchRecord{
			Clock:      clock,
			ProcessID:  sorted[idx].ID,
			Duration:   1,
			ReadyCount: len(arrived),
			Remaining:  remaining[idx],
			Reason:     trace.ReasonMinPriority,
		})
		clock++

		if remaining[idx] == 0 {
			arrived = append(arrived[:pos], arrived[pos+1:]...)
			completed++
		}
	}
	return schedule, nil
}
