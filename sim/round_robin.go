package sim

import (
	"fmt"

	"github.com/schedsim/schedsim/sim/trace"
)

// roundRobin gives each ready process up to quantum time units in FIFO order.
//
// After an unfinished slice, processes that arrived during the slice are
// admitted before the preempted process is re-queued at the tail. This
// admission-then-requeue order is part of the policy and determines which
// process runs next when an arrival coincides with a slice boundary.
func roundRobin(processes []Process, quantum int64, tr *trace.SimulationTrace) (Schedule, error) {
	if err := validateProcesses(processes, false); err != nil {
		return nil, err
	}
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: time quantum must be positive, got %d", ErrInvalidInput, quantum)
	}

	sorted := sortedByArrival(processes)
	n := len(sorted)
	remaining := make([]int64, n)
	for i, p := range sorted {
		remaining[i] = p.BurstTime
	}
	queue := NewReadyQueue(n)
	schedule := make(Schedule, 0, n)

	var clock int64
	next := 0 // first sorted position not yet admitted
	completed := 0
	admit := func() {
		for next < n && sorted[next].ArrivalTime <= clock {
			queue.Enqueue(next)
			next++
		}
	}

	for completed < n {
		admit()
		idx, ok := queue.Dequeue()
		if !ok {
			// every unfinished process is either queued or not yet admitted,
			// so an empty queue here means next < n
			tr.RecordIdle(trace.IdleRecord{From: clock, To: sorted[next].ArrivalTime})
			clock = sorted[next].ArrivalTime
			continue
		}
		ready := queue.Len() + 1

		slice := min(quantum, remaining[idx])
		start := clock
		clock += slice
		remaining[idx] -= slice
		schedule = append(schedule, Interval{ProcessID: sorted[idx].ID, Start: start, End: clock})
		tr.RecordDispatch(trace.DispatchRecord{
			Clock:      start,
			ProcessID:  sorted[idx].ID,
			Duration:   slice,
			ReadyCount: ready,
			Remaining:  remaining[idx],
			Reason:     trace.ReasonQuantum,
		})

		if remaining[idx] > 0 {
			admit()
			queue.Enqueue(idx)
		} else {
			completed++
		}
	}
	return schedule, nil
}
